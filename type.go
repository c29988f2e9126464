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
	"strconv"
	"strings"
)

// Type is a partition type.
//
type Type uint8

// Partition types.
//
// Segment types are followed by their String, Char, LineComment and
// BlockComment specializations.
//
const (
	None Type = iota // no partition

	Imports
	ImportsString
	ImportsChar
	ImportsLineComment
	ImportsBlockComment

	KeywordPrefix // "COMPILER" and the white space that follows
	KeywordIdent  // grammar name

	ParserCode
	ParserCodeString
	ParserCodeChar
	ParserCodeLineComment
	ParserCodeBlockComment

	IgnoreCase
	IgnoreCaseString
	IgnoreCaseChar
	IgnoreCaseLineComment
	IgnoreCaseBlockComment

	Characters
	CharactersString
	CharactersChar
	CharactersLineComment
	CharactersBlockComment

	Tokens
	TokensString
	TokensChar
	TokensLineComment
	TokensBlockComment

	Pragmas
	PragmasString
	PragmasChar
	PragmasLineComment
	PragmasBlockComment
	PragmasCodeStart // (.
	PragmasCode
	PragmasCodeEnd // .)

	Comments
	CommentsString
	CommentsChar
	CommentsLineComment
	CommentsBlockComment

	Ignore
	IgnoreString
	IgnoreChar
	IgnoreLineComment
	IgnoreBlockComment

	Productions
	ProductionsString
	ProductionsChar
	ProductionsLineComment
	ProductionsBlockComment
	ProductionsCodeStart // (.
	ProductionsCode
	ProductionsCodeEnd // .)

	Default
	CodeStart // (.
	Code
	CodeEnd // .)

	End // end of scan range

	numTypes
)

// lexical category of a partition type.
//
type category uint8

const (
	catNone category = iota
	catSegment
	catString
	catChar
	catLineComment
	catBlockComment
	catCodeStart
	catCode
	catCodeEnd
	catKeywordPrefix
	catKeywordIdent
)

type typeInfo struct {
	name  string
	cat   category
	super Type // owning segment
	next  Type // state entered after a fixed-length delimiter or at the end of a code body
}

var types = [numTypes]typeInfo{
	None: {"None", catNone, None, None},

	Imports:             {"Imports", catSegment, Imports, None},
	ImportsString:       {"ImportsString", catString, Imports, None},
	ImportsChar:         {"ImportsChar", catChar, Imports, None},
	ImportsLineComment:  {"ImportsLineComment", catLineComment, Imports, None},
	ImportsBlockComment: {"ImportsBlockComment", catBlockComment, Imports, None},

	KeywordPrefix: {"KeywordPrefix", catKeywordPrefix, KeywordPrefix, None},
	KeywordIdent:  {"KeywordIdent", catKeywordIdent, KeywordIdent, None},

	ParserCode:             {"ParserCode", catSegment, ParserCode, None},
	ParserCodeString:       {"ParserCodeString", catString, ParserCode, None},
	ParserCodeChar:         {"ParserCodeChar", catChar, ParserCode, None},
	ParserCodeLineComment:  {"ParserCodeLineComment", catLineComment, ParserCode, None},
	ParserCodeBlockComment: {"ParserCodeBlockComment", catBlockComment, ParserCode, None},

	IgnoreCase:             {"IgnoreCase", catSegment, IgnoreCase, None},
	IgnoreCaseString:       {"IgnoreCaseString", catString, IgnoreCase, None},
	IgnoreCaseChar:         {"IgnoreCaseChar", catChar, IgnoreCase, None},
	IgnoreCaseLineComment:  {"IgnoreCaseLineComment", catLineComment, IgnoreCase, None},
	IgnoreCaseBlockComment: {"IgnoreCaseBlockComment", catBlockComment, IgnoreCase, None},

	Characters:             {"Characters", catSegment, Characters, None},
	CharactersString:       {"CharactersString", catString, Characters, None},
	CharactersChar:         {"CharactersChar", catChar, Characters, None},
	CharactersLineComment:  {"CharactersLineComment", catLineComment, Characters, None},
	CharactersBlockComment: {"CharactersBlockComment", catBlockComment, Characters, None},

	Tokens:             {"Tokens", catSegment, Tokens, None},
	TokensString:       {"TokensString", catString, Tokens, None},
	TokensChar:         {"TokensChar", catChar, Tokens, None},
	TokensLineComment:  {"TokensLineComment", catLineComment, Tokens, None},
	TokensBlockComment: {"TokensBlockComment", catBlockComment, Tokens, None},

	Pragmas:             {"Pragmas", catSegment, Pragmas, None},
	PragmasString:       {"PragmasString", catString, Pragmas, None},
	PragmasChar:         {"PragmasChar", catChar, Pragmas, None},
	PragmasLineComment:  {"PragmasLineComment", catLineComment, Pragmas, None},
	PragmasBlockComment: {"PragmasBlockComment", catBlockComment, Pragmas, None},
	PragmasCodeStart:    {"PragmasCodeStart", catCodeStart, Pragmas, PragmasCode},
	PragmasCode:         {"PragmasCode", catCode, Pragmas, PragmasCodeEnd},
	PragmasCodeEnd:      {"PragmasCodeEnd", catCodeEnd, Pragmas, Pragmas},

	Comments:             {"Comments", catSegment, Comments, None},
	CommentsString:       {"CommentsString", catString, Comments, None},
	CommentsChar:         {"CommentsChar", catChar, Comments, None},
	CommentsLineComment:  {"CommentsLineComment", catLineComment, Comments, None},
	CommentsBlockComment: {"CommentsBlockComment", catBlockComment, Comments, None},

	Ignore:             {"Ignore", catSegment, Ignore, None},
	IgnoreString:       {"IgnoreString", catString, Ignore, None},
	IgnoreChar:         {"IgnoreChar", catChar, Ignore, None},
	IgnoreLineComment:  {"IgnoreLineComment", catLineComment, Ignore, None},
	IgnoreBlockComment: {"IgnoreBlockComment", catBlockComment, Ignore, None},

	Productions:             {"Productions", catSegment, Productions, None},
	ProductionsString:       {"ProductionsString", catString, Productions, None},
	ProductionsChar:         {"ProductionsChar", catChar, Productions, None},
	ProductionsLineComment:  {"ProductionsLineComment", catLineComment, Productions, None},
	ProductionsBlockComment: {"ProductionsBlockComment", catBlockComment, Productions, None},
	ProductionsCodeStart:    {"ProductionsCodeStart", catCodeStart, Productions, ProductionsCode},
	ProductionsCode:         {"ProductionsCode", catCode, Productions, ProductionsCodeEnd},
	ProductionsCodeEnd:      {"ProductionsCodeEnd", catCodeEnd, Productions, Productions},

	Default:   {"Default", catSegment, Default, None},
	CodeStart: {"CodeStart", catCodeStart, Default, Code},
	Code:      {"Code", catCode, Default, CodeEnd},
	CodeEnd:   {"CodeEnd", catCodeEnd, Default, Default},

	End: {"End", catNone, End, None},
}

// String returns the name of the partition type, e.g. "TokensString".
//
func (t Type) String() string {
	if t >= numTypes {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return types[t].name
}

// ContentType returns a stable content type identifier for t, suitable for
// editor integration. For example, TokensString returns "__atg_tokens_string".
//
func (t Type) ContentType() string {
	if t == None || t >= numTypes {
		return ""
	}
	return contentTypes[t]
}

// Segment returns the segment that owns partitions of type t. For segments and
// the keyword delimiters, this is t itself.
//
func (t Type) Segment() Type {
	if t >= numTypes {
		return None
	}
	return types[t].super
}

// IsSegment reports whether t is one of the ten segment types.
//
func (t Type) IsSegment() bool {
	return t < numTypes && types[t].cat == catSegment
}

// IsComment reports whether t is a line or block comment of any segment.
//
func (t Type) IsComment() bool {
	if t >= numTypes {
		return false
	}
	c := types[t].cat
	return c == catLineComment || c == catBlockComment
}

// IsLiteral reports whether t is a string or character literal of any segment.
//
func (t Type) IsLiteral() bool {
	if t >= numTypes {
		return false
	}
	c := types[t].cat
	return c == catString || c == catChar
}

// IsDelimiter reports whether t is a fixed delimiter: the COMPILER keyword,
// the grammar name or an embedded code block start or end.
//
func (t Type) IsDelimiter() bool {
	if t >= numTypes {
		return false
	}
	switch types[t].cat {
	case catCodeStart, catCodeEnd, catKeywordPrefix, catKeywordIdent:
		return true
	}
	return false
}

// IsHostCode reports whether partitions of type t contain host language code
// that a foreign sub-lexer can tokenise.
//
func (t Type) IsHostCode() bool {
	switch t {
	case Imports, ParserCode, Code, PragmasCode, ProductionsCode:
		return true
	}
	return false
}

// TypeByName returns the partition type with the given name. The lookup is
// case-insensitive.
//
func TypeByName(name string) (Type, bool) {
	for t := Imports; t < numTypes; t++ {
		if strings.EqualFold(types[t].name, name) {
			return t, true
		}
	}
	return None, false
}

var contentTypes = func() (ids [numTypes]string) {
	for t := Imports; t < numTypes; t++ {
		ids[t] = "__atg" + snake(types[t].name)
	}
	return ids
}()

// snake converts a CamelCase name to _camel_case.
//
func snake(s string) string {
	var b strings.Builder
	for _, r := range s {
		if 'A' <= r && r <= 'Z' {
			b.WriteByte('_')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// contextualize returns the specialization of category c for segment seg, or
// seg itself if seg has no such specialization.
//
func contextualize(c category, seg Type) Type {
	if t := specialized[seg][c]; t != None {
		return t
	}
	return seg
}

var specialized = func() (tab [numTypes][catKeywordIdent + 1]Type) {
	for t := Imports; t < End; t++ {
		switch c := types[t].cat; c {
		case catSegment, catKeywordPrefix, catKeywordIdent:
		case catCode, catCodeEnd:
			// reachable only through their start delimiter
		default:
			tab[types[t].super][c] = t
		}
	}
	return tab
}()

// codeStart returns the embedded code start delimiter for segment seg, or None
// if seg does not allow embedded code blocks.
//
func codeStart(seg Type) Type {
	return specialized[seg][catCodeStart]
}

// hasLexical reports whether seg recognizes strings, chars and comments.
//
func hasLexical(seg Type) bool {
	return specialized[seg][catString] != None
}
