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
	"io"
	"unicode/utf8"
)

// EOF is the return value from Cursor.Next when the end of the scan range is
// reached.
//
const EOF rune = -1

const (
	bufSize = 4 << 10 // size of the read window
	history = utf8.UTFMax
)

// A Source is a read-only document snapshot. Both *strings.Reader and
// *bytes.Reader implement Source.
//
type Source interface {
	io.ReaderAt
	// Size returns the length of the document in bytes.
	Size() int64
}

// A Cursor reads runes from a bounded range of a Source through a fixed-size
// sliding window. Offsets are byte offsets into the Source.
//
// A Cursor must be Reset before use.
//
type Cursor struct {
	buf  [bufSize]byte
	src  Source
	offs int // document offset of buf[0]
	r, w int // read/write indices
	end  int // document offset of the end of the scan range
	last int // width of the last rune returned by Next, 0 if it cannot be undone
}

// Reset installs the scan range [offset, offset+length) of src. The range is
// clamped to the document size.
//
func (c *Cursor) Reset(src Source, offset, length int) {
	size := int(src.Size())
	if offset < 0 {
		offset = 0
	}
	if offset > size {
		offset = size
	}
	end := offset + length
	if length < 0 || end > size {
		end = size
	}
	c.src = src
	c.offs = offset
	c.r, c.w = 0, 0
	c.end = end
	c.last = 0
	// sentinel
	c.buf[0] = utf8.RuneSelf
}

// Next returns the next rune in the scan range. It returns EOF at the end of
// the range or when the Source cannot be read any further. Invalid UTF-8
// sequences are returned as utf8.RuneError with a width of 1.
//
func (c *Cursor) Next() rune {
	if c.r+utf8.UTFMax > c.w && c.offs+c.w < c.end {
		c.fill()
	}

	// Common case: ASCII
	// Invariant: c.buf[c.w] == utf8.RuneSelf
	if b := c.buf[c.r]; b < utf8.RuneSelf {
		c.r++
		c.last = 1
		return rune(b)
	}

	if c.r == c.w {
		c.last = 0
		return EOF
	}

	r, w := utf8.DecodeRune(c.buf[c.r:c.w])
	c.r += w
	c.last = w
	return r
}

// Backup reverts the last call to Next.
//
// Backup can only undo a single rune: calling it twice in a row, before any
// call to Next or after Next returned EOF is a no-op. The lexer never needs
// more than that.
//
func (c *Cursor) Backup() {
	c.r -= c.last
	c.last = 0
}

// Width returns the width in bytes of the last rune returned by Next, or 0 if
// it returned EOF or has been backed up.
//
func (c *Cursor) Width() int {
	return c.last
}

// Pos returns the offset of the next rune to be read.
//
func (c *Cursor) Pos() int {
	return c.offs + c.r
}

// End returns the offset of the end of the scan range.
//
func (c *Cursor) End() int {
	return c.end
}

func (c *Cursor) fill() {
	// slide buffer contents, keeping enough history for Backup.
	if n := c.r - history; n > 0 {
		copy(c.buf[:], c.buf[n:c.w])
		c.offs += n
		c.r -= n
		c.w -= n
	}

	n := len(c.buf) - 1 - c.w // -1 to leave space for sentinel
	if rem := c.end - c.offs - c.w; rem < n {
		n = rem
	}
	if n > 0 {
		m, err := c.src.ReadAt(c.buf[c.w:c.w+n], int64(c.offs+c.w))
		c.w += m
		if m < n && err != nil {
			// short document: what we got is all there is.
			c.end = c.offs + c.w
		}
	}
	c.buf[c.w] = utf8.RuneSelf // sentinel
}
