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

// Package sublex tokenises partitions with chroma lexers: host code partitions
// with the Java lexer and grammar segments with a lexer for the Coco/R
// grammar notation.
//
package sublex

import (
	"fmt"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/db47h/atg"
)

// Token is a token produced by a sub-lexer. Offset is relative to the start of
// the document.
//
type Token struct {
	Offset int
	Length int
	Kind   string // chroma token type, e.g. "KeywordType"
}

// Lexer tokenises the partitions it accepts.
//
type Lexer struct {
	lexer   chroma.Lexer
	accepts func(atg.Type) bool
}

// Grammar is the chroma lexer for the Coco/R grammar notation used in the
// declaration segments. Strings and comments are partitions of their own and
// are not handled.
//
var Grammar = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Coco/R",
		Aliases:   []string{"atg", "coco"},
		Filenames: []string{"*.atg"},
	},
	chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Text, Mutator: nil},
			{Pattern: `\b(COMPILER|IGNORECASE|CHARACTERS|TOKENS|PRAGMAS|COMMENTS|IGNORE|PRODUCTIONS|END)\b`, Type: chroma.KeywordNamespace, Mutator: nil},
			{Pattern: `\b(ANY|CONTEXT|FROM|IF|NESTED|SYNC|TO|WEAK|out)\b`, Type: chroma.Keyword, Mutator: nil},
			{Pattern: `[0-9]+`, Type: chroma.Number, Mutator: nil},
			{Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`, Type: chroma.Name, Mutator: nil},
			{Pattern: `\.\.`, Type: chroma.Operator, Mutator: nil},
			{Pattern: `[=.|+\-]`, Type: chroma.Operator, Mutator: nil},
			{Pattern: `[\[\]{}()<>]`, Type: chroma.Punctuation, Mutator: nil},
			{Pattern: `.`, Type: chroma.Text, Mutator: nil},
		},
	},
)

// Java returns a Lexer for host code partitions.
//
func Java() *Lexer {
	l := lexers.Get("java")
	if l == nil {
		l = lexers.Fallback
	}
	return &Lexer{lexer: l, accepts: atg.Type.IsHostCode}
}

// Notation returns a Lexer for the grammar notation of declaration segments.
//
func Notation() *Lexer {
	return &Lexer{lexer: Grammar, accepts: isNotation}
}

func isNotation(t atg.Type) bool {
	switch t {
	case atg.IgnoreCase, atg.Characters, atg.Tokens, atg.Pragmas, atg.Comments, atg.Ignore, atg.Productions, atg.Default:
		return true
	}
	return false
}

// Name returns the name of the underlying chroma lexer.
//
func (l *Lexer) Name() string {
	return l.lexer.Config().Name
}

// Accepts reports whether l can tokenise partitions of type t.
//
func (l *Lexer) Accepts(t atg.Type) bool {
	return l.accepts(t)
}

// Tokenise tokenises the partition p of text. The returned tokens tile p.
//
func (l *Lexer) Tokenise(text string, p atg.Token) ([]Token, error) {
	if p.Offset < 0 || p.End() > len(text) {
		return nil, fmt.Errorf("partition %v out of bounds", p)
	}
	it, err := l.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text[p.Offset:p.End()])
	if err != nil {
		return nil, fmt.Errorf("tokenising %v with %s: %w", p, l.Name(), err)
	}
	var toks []Token
	off, end := p.Offset, p.End()
	for t := it(); t != chroma.EOF && off < end; t = it() {
		n := len(t.Value)
		if n == 0 {
			continue
		}
		// some lexers append a trailing newline
		if off+n > end {
			n = end - off
		}
		toks = append(toks, Token{Offset: off, Length: n, Kind: t.Type.String()})
		off += n
	}
	return toks, nil
}
