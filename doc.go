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

/*
Package atg provides an incremental partitioning lexer for Coco/R attributed
grammar files (.atg) with embedded Java code.

Partitions

The lexer does not tokenize a grammar file; it splits it into partitions,
contiguous byte ranges classified by a partition Type, so that downstream
consumers such as syntax highlighters, a grammar parser or a Java sub-lexer
only need to look at the ranges relevant to them.

A grammar file is made of segments:

	import java.util.*;        // Imports
	COMPILER Sample            // KeywordPrefix, KeywordIdent
	  int count;               // ParserCode
	IGNORECASE                 // IgnoreCase
	CHARACTERS letter = 'a'..'z'.
	TOKENS ident = letter {letter}.
	PRAGMAS option = "$" letter. (. setOption(); .)
	COMMENTS FROM "//" TO lf
	IGNORE '\t' + '\r' + '\n'
	PRODUCTIONS
	  Sample = ident (. count++; .) .
	END Sample.                // Default

Each segment has its own String, Char, LineComment and BlockComment partition
types. For example a string in the TOKENS segment is a TokensString while a
string in the PRAGMAS segment is a PragmasString. Embedded code blocks,
delimited by "(." and ".)", are split into a start delimiter, a code body and
an end delimiter. They are allowed in the PRAGMAS and PRODUCTIONS segments as
well as after the END keyword.

Segments are ended by keywords: each segment has a fixed set of terminating
keywords, the ones of the segments that may follow it. The terminators are
configurable through Keywords.

Scanning

A Lexer is a state machine driven by a Cursor, a bounded read window over a
Source. Each call to Lexer.Next returns exactly one partition:

	l := atg.NewLexer(nil)
	l.Reset(strings.NewReader(src), 0, len(src))
	for t := l.Next(); t.Type != atg.End; t = l.Next() {
		fmt.Println(t)
	}

The lexer never fails: unterminated strings, comments or code blocks are
classified under their partition type up to the end of the scan range.

Incremental scans

After an edit, a document does not need to be rescanned from the start.
Lexer.Resume starts a scan at any partition boundary, given the type of the
partition starting there. The partitions it returns are the same as those of a
full scan from that boundary onward. The document sub-package uses this to
re-partition a document after an edit by rescanning only the region where the
partitions change.

*/
package atg
