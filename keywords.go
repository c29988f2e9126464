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
	"sort"
	"strings"
)

// A Keyword is a reserved word that terminates a segment.
//
type Keyword struct {
	Segment Type   // segment terminated by Word
	Word    string // case-sensitive keyword
	Target  Type   // partition type entered at Word
}

// Keywords holds the segment terminators of each segment. A Keywords value is
// immutable once built and can be shared by any number of lexers.
//
type Keywords struct {
	m      [numTypes]map[string]Type
	maxLen int
}

// NewKeywords builds a keyword table. It panics if a Segment is not a segment
// type, if a Target is neither a segment type nor KeywordPrefix or if a word
// is registered twice for the same segment.
//
func NewKeywords(kw ...Keyword) *Keywords {
	k := new(Keywords)
	for _, w := range kw {
		if !w.Segment.IsSegment() {
			panic("keyword " + w.Word + " registered for non-segment type " + w.Segment.String())
		}
		if !w.Target.IsSegment() && w.Target != KeywordPrefix {
			panic("keyword " + w.Word + " targets invalid type " + w.Target.String())
		}
		m := k.m[w.Segment]
		if m == nil {
			m = make(map[string]Type)
			k.m[w.Segment] = m
		}
		if _, ok := m[w.Word]; ok {
			panic("keyword " + w.Word + " registered twice in " + w.Segment.String())
		}
		m[w.Word] = w.Target
		if len(w.Word) > k.maxLen {
			k.maxLen = len(w.Word)
		}
	}
	return k
}

// Lookup returns the partition type entered when word is found in segment seg.
//
func (k *Keywords) Lookup(seg Type, word string) (Type, bool) {
	return k.lookup(seg, []byte(word))
}

func (k *Keywords) lookup(seg Type, word []byte) (Type, bool) {
	if len(word) > k.maxLen || seg >= numTypes {
		return None, false
	}
	t, ok := k.m[seg][string(word)]
	return t, ok
}

// Rules returns the keyword table's contents sorted by segment and word.
//
func (k *Keywords) Rules() []Keyword {
	var kw []Keyword
	for seg, m := range k.m {
		for w, t := range m {
			kw = append(kw, Keyword{Type(seg), w, t})
		}
	}
	sort.Slice(kw, func(i, j int) bool {
		if kw[i].Segment != kw[j].Segment {
			return kw[i].Segment < kw[j].Segment
		}
		return strings.Compare(kw[i].Word, kw[j].Word) < 0
	})
	return kw
}

// With returns a copy of k where the terminators of each segment present in
// rules are replaced by the ones listed in rules. Segments absent from rules
// keep their terminators.
//
func (k *Keywords) With(rules ...Keyword) *Keywords {
	var replaced [numTypes]bool
	for _, r := range rules {
		if r.Segment < numTypes {
			replaced[r.Segment] = true
		}
	}
	var kw []Keyword
	for _, r := range k.Rules() {
		if !replaced[r.Segment] {
			kw = append(kw, r)
		}
	}
	return NewKeywords(append(kw, rules...)...)
}

// segment order of a Coco/R grammar, following COMPILER ident.
//
var segmentOrder = []struct {
	seg  Type
	word string
}{
	{ParserCode, ""},
	{IgnoreCase, "IGNORECASE"},
	{Characters, "CHARACTERS"},
	{Tokens, "TOKENS"},
	{Pragmas, "PRAGMAS"},
	{Comments, "COMMENTS"},
	{Ignore, "IGNORE"},
	{Productions, "PRODUCTIONS"},
}

// DefaultKeywords returns the segment terminators of the Coco/R grammar
// format: COMPILER ends the import section, each segment is ended by the
// keyword of any segment that can follow it, and END ends the productions.
//
// Segments never list their own keyword, so repeated COMMENTS or IGNORE
// declarations stay in the same segment.
//
func DefaultKeywords() *Keywords {
	kw := []Keyword{
		{Imports, "COMPILER", KeywordPrefix},
		{Productions, "END", Default},
	}
	for i, s := range segmentOrder {
		for _, next := range segmentOrder[i+1:] {
			kw = append(kw, Keyword{s.seg, next.word, next.seg})
		}
	}
	return NewKeywords(kw...)
}
