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

// Package document maintains the partitioning of a grammar file across edits.
//
// A Document holds a text snapshot together with its partitions. After an edit,
// it resumes the lexer at a partition boundary before the edit and rescans
// until the new partitions line up again with the old ones, so that the cost
// of an edit is proportional to the region whose partitioning changes.
//
package document

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/db47h/atg"
	"github.com/db47h/atg/internal/logfields"
	"github.com/sirupsen/logrus"
)

// Region is a byte range of a document.
//
type Region struct {
	Offset int
	Length int
}

// End returns the offset of the first byte past r.
//
func (r Region) End() int {
	return r.Offset + r.Length
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,+%d)", r.Offset, r.Length)
}

// Option is a Document option.
//
type Option func(*Document)

// WithLogger sets the logger used to trace rescans.
//
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Document) {
		d.log = log
	}
}

// A Document is a partitioned text. It is not safe for concurrent use.
//
type Document struct {
	cfg   *atg.Config
	name  string
	text  string
	parts []atg.Token
	lines *Lines
	lex   *atg.Lexer
	log   logrus.FieldLogger
}

// New returns a new Document for the given text, partitioned with cfg. If cfg
// is nil, atg.DefaultConfig is used.
//
func New(cfg *atg.Config, name, text string, opts ...Option) *Document {
	if cfg == nil {
		cfg = atg.DefaultConfig()
	}
	d := &Document{
		cfg:  cfg,
		name: name,
		text: text,
		lex:  atg.NewLexer(cfg),
	}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		d.log = l
	}
	d.lex.Reset(strings.NewReader(text), 0, len(text))
	for t := d.lex.Next(); t.Type != atg.End; t = d.lex.Next() {
		d.parts = append(d.parts, t)
	}
	d.log.WithFields(logrus.Fields{
		logfields.File:       name,
		logfields.Length:     len(text),
		logfields.Partitions: len(d.parts),
	}).Debug("Document partitioned")
	return d
}

// Name returns the document name.
//
func (d *Document) Name() string {
	return d.name
}

// Text returns the current document text.
//
func (d *Document) Text() string {
	return d.text
}

// Partitions returns the partitions of the document. The returned slice must
// not be modified and is only valid until the next call to Replace.
//
func (d *Document) Partitions() []atg.Token {
	return d.parts
}

// PartitionAt returns the partition containing offset and its index. The end
// of the document belongs to the last partition. If there is no such
// partition, PartitionAt returns a token of type atg.None and -1.
//
func (d *Document) PartitionAt(offset int) (atg.Token, int) {
	i := d.find(offset)
	if i < 0 || offset > d.parts[i].End() {
		return atg.Token{Offset: offset}, -1
	}
	return d.parts[i], i
}

// find returns the index of the last partition starting at or before offset,
// or -1.
//
func (d *Document) find(offset int) int {
	return sort.Search(len(d.parts), func(i int) bool {
		return d.parts[i].Offset > offset
	}) - 1
}

// Lines returns the line table of the document.
//
func (d *Document) Lines() *Lines {
	if d.lines == nil {
		d.lines = NewLines(d.name, d.text, d.cfg.LineDelimiters)
	}
	return d.lines
}

// Replace replaces length bytes at offset with text and updates the
// partitions. It returns the region of the new document whose partitioning
// changed: the region spanning all partitions that were added, removed or
// moved relative to the edited text.
//
func (d *Document) Replace(offset, length int, text string) (Region, error) {
	if offset < 0 || length < 0 || offset+length > len(d.text) {
		return Region{}, fmt.Errorf("replace [%d,+%d) in %d bytes: %w", offset, length, len(d.text), ErrRange)
	}
	old := d.parts
	d.text = d.text[:offset] + text + d.text[offset+length:]
	d.lines = nil
	delta := len(text) - length

	// restart point
	j := d.restartIndex(offset)
	var start int
	src := strings.NewReader(d.text)
	if j <= 0 {
		j = 0
		d.lex.Reset(src, 0, len(d.text))
	} else {
		start = old[j].Offset
		d.lex.Resume(src, start, len(d.text)-start, atg.Restart{Type: old[j].Type, Start: start, Prior: old[j-1].Type})
	}

	// rescan until the partitions line up with the old ones after the edit.
	var parts []atg.Token
	k := len(old)
	m := j // candidate old partition for resynchronization
	editEnd := offset + length
	for t := d.lex.Next(); t.Type != atg.End; t = d.lex.Next() {
		for m < len(old) && old[m].Offset+delta < t.Offset {
			m++
		}
		if m < len(old) && old[m].Offset >= editEnd && old[m].Offset+delta == t.Offset && old[m].Type == t.Type {
			k = m
			break
		}
		parts = append(parts, t)
	}

	// skip leading partitions that did not change
	i := 0
	for i < len(parts) && j+i < len(old) && parts[i] == old[j+i] && parts[i].End() <= offset {
		i++
	}
	damage := Region{Offset: len(d.text)}
	if i < len(parts) {
		damage.Offset = parts[i].Offset
	}
	if damage.Offset > offset {
		damage.Offset = offset
	}
	end := len(d.text)
	if k < len(old) {
		end = old[k].Offset + delta
	}
	if end < offset+len(text) {
		end = offset + len(text)
	}
	damage.Length = end - damage.Offset

	// splice
	var np []atg.Token
	if n := j + len(parts) + len(old) - k; n > 0 {
		np = make([]atg.Token, 0, n)
	}
	np = append(np, old[:j]...)
	np = append(np, parts...)
	for _, t := range old[k:] {
		t.Offset += delta
		np = append(np, t)
	}
	d.parts = np

	d.log.WithFields(logrus.Fields{
		logfields.File:       d.name,
		logfields.Offset:     offset,
		logfields.Length:     length,
		logfields.Restart:    start,
		logfields.Rescanned:  len(parts),
		logfields.Region:     damage,
		logfields.Partitions: len(d.parts),
	}).Debug("Document updated")

	return damage, nil
}

// restartIndex returns the index of the last partition whose start is not
// affected by an edit at offset, that is the last partition that does not
// depend on lookahead at or past offset to be recognized.
//
func (d *Document) restartIndex(offset int) int {
	j := d.find(offset)
	for ; j > 0; j-- {
		b := d.parts[j].Offset
		if b+d.lookahead(b) <= offset {
			break
		}
	}
	return j
}

// lookahead returns the number of bytes read past offset b before a partition
// starting at b is recognized: the identifier starting at b and the rune that
// follows it, or a two rune delimiter. Runes missing at the end of the text
// count as one byte each.
//
func (d *Document) lookahead(b int) int {
	text := d.text[b:]
	n := 0
	for n < len(text) {
		r, w := utf8.DecodeRuneInString(text[n:])
		if !atg.IsIdentPart(r) {
			break
		}
		n += w
	}
	runes := 1
	if n == 0 {
		runes = 2
	}
	for ; runes > 0; runes-- {
		if n >= len(text) {
			return n + runes
		}
		_, w := utf8.DecodeRuneInString(text[n:])
		n += w
	}
	return n
}
