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

package document

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Common errors.
//
var (
	ErrRange = errors.New("range out of bounds")
	ErrLine  = errors.New("invalid line number")
)

// Position describes an arbitrary source position including the file, line,
// and column location.
//
type Position struct {
	Filename string
	Offset   int // 0-based byte offset
	Line     int // 1-based line number
	Column   int // 1-based column number (byte index)
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Lines is the line table of a text. It handles offset to line/column
// conversion.
//
type Lines struct {
	name   string
	text   string
	delims []string
	lines  []int // 0-based line offsets
}

// NewLines builds the line table of text. Lines are separated by any of the
// given delimiters, the longest delimiter taking precedence.
//
func NewLines(name, text string, delims []string) *Lines {
	f := &Lines{
		name:   name,
		text:   text,
		delims: delims,
		lines:  []int{0},
	}
	for i := 0; i < len(text); {
		if n := f.delimAt(i); n > 0 {
			i += n
			f.lines = append(f.lines, i)
			continue
		}
		_, n := utf8.DecodeRuneInString(text[i:])
		i += n
	}
	return f
}

// delimAt returns the length of the longest line delimiter at offset i.
//
func (f *Lines) delimAt(i int) int {
	n := 0
	for _, d := range f.delims {
		if len(d) > n && strings.HasPrefix(f.text[i:], d) {
			n = len(d)
		}
	}
	return n
}

// Name returns the file name.
//
func (f *Lines) Name() string {
	return f.name
}

// Count returns the number of lines.
//
func (f *Lines) Count() int {
	return len(f.lines)
}

// Position returns the 1-based line and column for a given offset. The returned
// column is a byte offset, not a rune offset. Offsets past the end of the text
// are clamped.
//
func (f *Lines) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.text) {
		offset = len(f.text)
	}
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > offset) {
			i = h + 1
		} else {
			j = h
		}
	}
	return Position{f.name, offset, i, offset - f.lines[i-1] + 1}
}

// LineStart returns the offset of the given 1-based line, or -1 if there is
// no such line.
//
func (f *Lines) LineStart(line int) int {
	if line < 1 || line > len(f.lines) {
		return -1
	}
	return f.lines[line-1]
}

// Line returns the given 1-based line without its delimiter.
//
func (f *Lines) Line(line int) (string, error) {
	start := f.LineStart(line)
	if start < 0 {
		return "", ErrLine
	}
	end := len(f.text)
	if line < len(f.lines) {
		end = f.lines[line]
		// strip the delimiter
		for i := start; i < end; i++ {
			if n := f.delimAt(i); n > 0 && i+n == end {
				end = i
				break
			}
		}
	}
	return f.text[start:end], nil
}

// Width computes the width in text cells of a given string (supposing
// rendering with a UTF-8 locale and monospaced font). A tab counts as one cell.
//
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r)
	}
	return w
}

// Blank returns a string that renders as wide as s: tabs are kept and every
// other rune is replaced by as many spaces as its Width. Printing Blank(s)
// under s lines up with s at any tab stop setting.
//
func Blank(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		for n := runeWidth(r); n > 0; n-- {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func runeWidth(r rune) int {
	if !unicode.IsGraphic(r) {
		if r == '\t' {
			return 1
		}
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	}
	// EastAsianAmbiguous depends on user locale: 2 if locale is CJK, 1 otherwise.
	return 1
}
