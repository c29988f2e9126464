// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package atg

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config is the immutable configuration of a Lexer. A Config must not be
// modified once it has been handed to NewLexer.
//
type Config struct {
	// Keywords holds the segment terminators. If nil, DefaultKeywords is used.
	Keywords *Keywords
	// NestedComments enables nesting of block comments.
	NestedComments bool
	// LineDelimiters are the legal line delimiters of the document. Only
	// "\r\n" and single rune delimiters are recognized.
	LineDelimiters []string
}

// DefaultConfig returns the configuration for Coco/R grammars: default
// keywords, nested block comments and the "\n", "\r\n" and "\r" line
// delimiters.
//
func DefaultConfig() *Config {
	return &Config{
		Keywords:       DefaultKeywords(),
		NestedComments: true,
		LineDelimiters: []string{"\n", "\r\n", "\r"},
	}
}

// Token is a partition of a document: Length bytes starting at byte Offset,
// classified as Type.
//
type Token struct {
	Offset int
	Length int
	Type   Type
}

// End returns the offset of the first byte past t.
//
func (t Token) End() int {
	return t.Offset + t.Length
}

func (t Token) String() string {
	return fmt.Sprintf("%s [%d,+%d)", t.Type, t.Offset, t.Length)
}

// pending lookahead
//
type pending uint8

const (
	none pending = iota
	slash
	star
	slashStar
	dot
	leftParen
	carriageReturn
	backslash
)

// A Lexer partitions a document into Tokens. It is a single scan session:
// Reset or Resume start a scan and successive calls to Next return the
// partitions of the scan range in order.
//
// A Lexer is not safe for concurrent use, but independent lexers may scan the
// same document concurrently.
//
type Lexer struct {
	cur    Cursor
	kw     *Keywords
	nested bool
	lf     bool   // "\n" is a line delimiter
	cr     bool   // "\r" is a line delimiter
	crlf   bool   // "\r\n" is a line delimiter
	eol    []rune // other single rune delimiters

	state   Type
	offset  int // start of the current token
	length  int // bytes accumulated in the current token
	pend    pending
	pendLen int
	depth   int // block comment nesting depth
	word    []byte
	tok     Token // last finalized token
}

// NewLexer returns a new Lexer for the given configuration. If cfg is nil,
// DefaultConfig is used.
//
func NewLexer(cfg *Config) *Lexer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Lexer{
		kw:     cfg.Keywords,
		nested: cfg.NestedComments,
		word:   make([]byte, 0, 64),
		state:  End,
	}
	if l.kw == nil {
		l.kw = DefaultKeywords()
	}
	l.cur.Reset(strings.NewReader(""), 0, 0)
	for _, d := range cfg.LineDelimiters {
		switch d {
		case "\n":
			l.lf = true
		case "\r":
			l.cr = true
		case "\r\n":
			l.crlf = true
		default:
			if r, n := utf8.DecodeRuneInString(d); n == len(d) && r != utf8.RuneError {
				l.eol = append(l.eol, r)
			}
		}
	}
	return l
}

// Reset starts a scan of the range [offset, offset+length) of src in the
// initial state of a grammar file, that is the Imports segment. Use Resume
// to start a scan anywhere else.
//
func (l *Lexer) Reset(src Source, offset, length int) {
	l.Resume(src, offset, length, Restart{Type: Imports, Start: offset})
}

// Next returns the next partition in the scan range. Once the range is
// exhausted, it returns a zero-length token of type End at the end of the
// range.
//
// Partitions tile the scan range: they are contiguous, non-overlapping and
// never empty.
//
func (l *Lexer) Next() Token {
	for {
		r := l.cur.Next()
		if r == EOF {
			l.unwind()
			if l.flush(l.length) {
				return l.tok
			}
			return Token{Offset: l.offset, Type: End}
		}
		if handlers[types[l.state].cat](l, r) {
			return l.tok
		}
	}
}

// State returns the current partition type of the lexer.
//
func (l *Lexer) State() Type {
	return l.state
}

// accept adds the last rune read to the current token.
//
func (l *Lexer) accept() {
	l.length += l.cur.Width()
}

// mark accepts the last rune read as a pending lookahead.
//
func (l *Lexer) mark(p pending) {
	w := l.cur.Width()
	l.length += w
	l.pend = p
	l.pendLen = w
}

func (l *Lexer) unwind() {
	l.pend = none
	l.pendLen = 0
}

// flush finalizes the first n accumulated bytes as a token of the current
// type. It returns false and does nothing if n is 0.
//
func (l *Lexer) flush(n int) bool {
	if n <= 0 {
		return false
	}
	l.tok = Token{Offset: l.offset, Length: n, Type: l.state}
	l.offset += n
	l.length -= n
	return true
}

// postFix accepts the last rune read as the last rune of the current token,
// finalizes it and switches to state next.
//
func (l *Lexer) postFix(next Type) bool {
	l.accept()
	ok := l.flush(l.length)
	l.enter(next)
	l.unwind()
	return ok
}

// preFix finalizes the current token without its last n bytes, which become
// the prefix of a new token of type next. If n > 0, the pending lookahead is
// carried over to the new token.
//
// The caller must have backed up the last rune read so that the new state
// reads it again.
//
func (l *Lexer) preFix(next Type, n int) bool {
	ok := l.flush(l.length - n)
	l.enter(next)
	if n == 0 {
		l.unwind()
	}
	return ok
}

func (l *Lexer) enter(t Type) {
	l.state = t
	l.depth = 0
}

// isEOL reports whether r starts a line delimiter.
//
func (l *Lexer) isEOL(r rune) bool {
	switch r {
	case '\n':
		return l.lf
	case '\r':
		return l.cr || l.crlf
	}
	return l.isOtherEOL(r)
}

func (l *Lexer) isOtherEOL(r rune) bool {
	for _, d := range l.eol {
		if r == d {
			return true
		}
	}
	return false
}

// scanWord reads the identifier run starting with r, the last rune read. It
// leaves the run in l.word and returns its length in bytes.
//
func (l *Lexer) scanWord(r rune) int {
	l.word = utf8.AppendRune(l.word[:0], r)
	n := l.cur.Width()
	for r = l.cur.Next(); IsIdentPart(r); r = l.cur.Next() {
		l.word = utf8.AppendRune(l.word, r)
		n += l.cur.Width()
	}
	l.cur.Backup()
	return n
}
