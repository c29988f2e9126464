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

// Restart describes where a resumed scan starts: the partition that contains
// the resume offset.
//
type Restart struct {
	Type  Type // type of the partition containing the resume offset
	Start int  // offset of that partition
	// Prior is the type of the partition immediately before Start, or None if
	// there is none. It is only used to disambiguate a Default partition.
	Prior Type
}

// Resume starts a scan of the range [offset, offset+length) of src in the
// partition described by at.
//
// When offset is a partition boundary (offset == at.Start), the tokens
// returned by Next are identical to those returned by a full scan of the
// document from that boundary onward. A Default partition at the start of a
// document or without a prior partition resumes in the Imports segment.
//
// When offset is strictly inside the partition, the first token starts at
// at.Start and the lexer assumes that no lookahead is pending at offset. Block
// comments resume at nesting depth 1.
//
func (l *Lexer) Resume(src Source, offset, length int, at Restart) {
	l.cur.Reset(src, offset, length)
	offset = l.cur.Pos()
	l.unwind()
	l.depth = 0
	l.length = 0
	l.offset = offset

	t := at.Type
	if t == None || t >= End {
		t = Imports
	}
	if t == Default && (at.Start == 0 || at.Prior == None) {
		t = Imports
	}
	l.state = t

	if at.Start < offset {
		l.offset = at.Start
		l.length = offset - at.Start
		if types[t].cat == catBlockComment {
			l.depth = 1
		}
	}
}
