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

// A stateFn handles rune r, the last rune read, in the current state of l. It
// returns true if it finalized a token, which is then available in l.tok.
//
// State functions are selected by the category of the current state; the
// concrete partition types they switch to are computed from the owning
// segment so that the same code serves all segments.
//
type stateFn func(l *Lexer, r rune) bool

var handlers = [...]stateFn{
	catNone:          endOfRange,
	catSegment:       segment,
	catString:        quoted,
	catChar:          quoted,
	catLineComment:   lineComment,
	catBlockComment:  blockComment,
	catCodeStart:     delimiter,
	catCode:          code,
	catCodeEnd:       delimiter,
	catKeywordPrefix: keywordPrefix,
	catKeywordIdent:  keywordIdent,
}

// endOfRange only occurs on a Lexer that has not been reset.
//
func endOfRange(l *Lexer, r rune) bool {
	l.accept()
	return false
}

func segment(l *Lexer, r rune) bool {
	seg := l.state
	switch l.pend {
	case slash:
		switch r {
		case '/':
			l.cur.Backup()
			return l.preFix(contextualize(catLineComment, seg), l.pendLen)
		case '*':
			l.cur.Backup()
			return l.preFix(contextualize(catBlockComment, seg), l.pendLen)
		}
	case leftParen:
		if r == '.' {
			l.cur.Backup()
			return l.preFix(codeStart(seg), l.pendLen)
		}
	}
	l.unwind()

	switch {
	case r == '/' && hasLexical(seg):
		l.mark(slash)
	case r == '(' && codeStart(seg) != None:
		l.mark(leftParen)
	case r == '"' && hasLexical(seg):
		l.cur.Backup()
		return l.preFix(contextualize(catString, seg), 0)
	case r == '\'' && hasLexical(seg):
		l.cur.Backup()
		return l.preFix(contextualize(catChar, seg), 0)
	case IsIdentPart(r):
		n := l.scanWord(r)
		l.length += n
		if IsIdentStart(r) {
			if t, ok := l.kw.lookup(seg, l.word); ok {
				return l.preFix(t, n)
			}
		}
	default:
		l.accept()
	}
	return false
}

// quoted handles strings and character literals. They end at the closing
// quote or before a line delimiter.
//
func quoted(l *Lexer, r rune) bool {
	quote := '"'
	if types[l.state].cat == catChar {
		quote = '\''
	}
	if l.pend == backslash {
		l.unwind()
		if !l.isEOL(r) {
			l.accept()
			return false
		}
	}
	switch {
	case r == quote:
		if l.length == 0 {
			l.accept()
			return false
		}
		return l.postFix(l.state.Segment())
	case r == '\\':
		l.mark(backslash)
	case l.isEOL(r):
		l.cur.Backup()
		return l.preFix(l.state.Segment(), 0)
	default:
		l.accept()
	}
	return false
}

// lineComment ends after the first line delimiter.
//
func lineComment(l *Lexer, r rune) bool {
	switch l.pend {
	case slash:
		l.unwind()
		if r == '/' {
			l.accept()
			return false
		}
	case carriageReturn:
		l.unwind()
		if r == '\n' {
			return l.postFix(l.state.Segment())
		}
		if l.cr {
			l.cur.Backup()
			return l.preFix(l.state.Segment(), 0)
		}
	}
	switch {
	case r == '\n' && l.lf:
		return l.postFix(l.state.Segment())
	case r == '\r' && l.crlf:
		l.mark(carriageReturn)
	case r == '\r' && l.cr:
		return l.postFix(l.state.Segment())
	case l.isOtherEOL(r):
		return l.postFix(l.state.Segment())
	default:
		l.accept()
	}
	return false
}

func blockComment(l *Lexer, r rune) bool {
	switch l.pend {
	case slash:
		if r == '*' {
			l.unwind()
			if l.depth == 0 || l.nested {
				l.depth++
				l.accept()
			} else {
				// may be the '*' of "*/"
				l.accept()
				l.pend, l.pendLen = slashStar, 2
			}
			return false
		}
	case star, slashStar:
		if r == '/' {
			l.unwind()
			if l.depth--; l.depth <= 0 {
				return l.postFix(l.state.Segment())
			}
			l.accept()
			return false
		}
	}
	l.unwind()
	switch r {
	case '/':
		l.mark(slash)
	case '*':
		l.mark(star)
	default:
		l.accept()
	}
	return false
}

// code handles the body of embedded code blocks, up to ".)".
//
func code(l *Lexer, r rune) bool {
	if l.pend == dot && r == ')' {
		l.cur.Backup()
		return l.preFix(types[l.state].next, l.pendLen)
	}
	l.unwind()
	if r == '.' {
		l.mark(dot)
	} else {
		l.accept()
	}
	return false
}

// delimiter handles the fixed-length "(." and ".)" delimiters.
//
func delimiter(l *Lexer, r rune) bool {
	if l.length+l.cur.Width() < 2 {
		l.accept()
		return false
	}
	return l.postFix(types[l.state].next)
}

// keywordPrefix holds the COMPILER keyword and the white space that follows.
//
func keywordPrefix(l *Lexer, r rune) bool {
	switch {
	case IsSpace(r):
		l.accept()
	case IsIdentPart(r) && l.length == 0:
		// resumed at the keyword itself
		l.length += l.scanWord(r)
	case IsIdentStart(r):
		l.cur.Backup()
		return l.preFix(KeywordIdent, 0)
	default:
		l.cur.Backup()
		return l.preFix(ParserCode, 0)
	}
	return false
}

func keywordIdent(l *Lexer, r rune) bool {
	if IsIdentPart(r) && (l.length > 0 || IsIdentStart(r)) {
		l.accept()
		return false
	}
	l.cur.Backup()
	return l.preFix(ParserCode, 0)
}
