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

package atg_test

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/atg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type res []string

func scanRange(l *atg.Lexer) []atg.Token {
	var toks []atg.Token
	for t := l.Next(); t.Type != atg.End; t = l.Next() {
		toks = append(toks, t)
	}
	return toks
}

func scan(cfg *atg.Config, src string) []atg.Token {
	l := atg.NewLexer(cfg)
	l.Reset(strings.NewReader(src), 0, len(src))
	return scanRange(l)
}

// scanIn scans src starting in segment seg.
func scanIn(cfg *atg.Config, seg atg.Type, src string) []atg.Token {
	l := atg.NewLexer(cfg)
	l.Resume(strings.NewReader(src), 0, len(src), atg.Restart{Type: seg, Prior: atg.ParserCode})
	return scanRange(l)
}

func render(src string, toks []atg.Token) res {
	r := make(res, 0, len(toks))
	for _, t := range toks {
		r = append(r, t.Type.String()+" "+strconv.Quote(src[t.Offset:t.End()]))
	}
	return r
}

func nonNested() *atg.Config {
	cfg := atg.DefaultConfig()
	cfg.NestedComments = false
	return cfg
}

func delims(d ...string) *atg.Config {
	cfg := atg.DefaultConfig()
	cfg.LineDelimiters = d
	return cfg
}

func TestLexer_scenario(t *testing.T) {
	src := "COMPILER Foo bar=1; TOKENS\nident = letter {letter}.\nPRODUCTIONS\n"
	want := res{
		// white space after COMPILER belongs to the prefix
		`KeywordPrefix "COMPILER "`,
		`KeywordIdent "Foo"`,
		`ParserCode " bar=1; "`,
		`Tokens "TOKENS\nident = letter {letter}.\n"`,
		`Productions "PRODUCTIONS\n"`,
	}
	if diff := cmp.Diff(want, render(src, scan(nil, src))); diff != "" {
		t.Errorf("partitions mismatch (-want +got):\n%s", diff)
	}
}

func TestLexer_Next(t *testing.T) {
	data := []struct {
		name string
		cfg  *atg.Config
		seg  atg.Type
		src  string
		res  res
	}{
		{"imports", nil, atg.Imports,
			"import a.b; // x\nCOMPILER G",
			res{`Imports "import a.b; "`, `ImportsLineComment "// x\n"`, `KeywordPrefix "COMPILER "`, `KeywordIdent "G"`}},
		{"importsBlock", nil, atg.Imports,
			"/* a */import 'c';\"s\"COMPILER\tG\n",
			res{`ImportsBlockComment "/* a */"`, `Imports "import "`, `ImportsChar "'c'"`, `Imports ";"`, `ImportsString "\"s\""`,
				`KeywordPrefix "COMPILER\t"`, `KeywordIdent "G"`, `ParserCode "\n"`}},
		{"compilerNoIdent", nil, atg.Imports,
			"COMPILER(x)",
			res{`KeywordPrefix "COMPILER"`, `ParserCode "(x)"`}},
		{"rollback", nil, atg.ParserCode,
			"abcTOKENS",
			res{`ParserCode "abcTOKENS"`}},
		{"rollbackSuffix", nil, atg.ParserCode,
			"abcTOKENSX",
			res{`ParserCode "abcTOKENSX"`}},
		{"rollbackKeywordPrefix", nil, atg.ParserCode,
			" TOKENSX TOKEN S 1TOKENS",
			res{`ParserCode " TOKENSX TOKEN S 1TOKENS"`}},
		{"keywordAfterDot", nil, atg.ParserCode,
			"a.TOKENS",
			res{`ParserCode "a."`, `Tokens "TOKENS"`}},
		{"keywordInString", nil, atg.ParserCode,
			` "TOKENS" TOKENS`,
			res{`ParserCode " "`, `ParserCodeString "\"TOKENS\""`, `ParserCode " "`, `Tokens "TOKENS"`}},
		{"skipEmpty", nil, atg.Imports,
			"COMPILER X\nTOKENS\nPRAGMAS",
			res{`KeywordPrefix "COMPILER "`, `KeywordIdent "X"`, `ParserCode "\n"`, `Tokens "TOKENS\n"`, `Pragmas "PRAGMAS"`}},
		{"segments", nil, atg.ParserCode,
			"IGNORECASE CHARACTERS a = 'x'..'z'.\nTOKENS PRAGMAS COMMENTS IGNORE PRODUCTIONS END",
			res{`IgnoreCase "IGNORECASE "`, `Characters "CHARACTERS a = "`, `CharactersChar "'x'"`, `Characters ".."`,
				`CharactersChar "'z'"`, `Characters ".\n"`, `Tokens "TOKENS "`, `Pragmas "PRAGMAS "`, `Comments "COMMENTS "`,
				`Ignore "IGNORE "`, `Productions "PRODUCTIONS "`, `Default "END"`}},
		{"noBackward", nil, atg.Tokens,
			"TOKENS CHARACTERS IGNORECASE",
			res{`Tokens "TOKENS CHARACTERS IGNORECASE"`}},
		{"repeatedComments", nil, atg.Comments,
			`COMMENTS FROM "/*" TO "*/" NESTED` + "\n" + `COMMENTS FROM "//" TO "\n"` + "\nIGNORE",
			res{`Comments "COMMENTS FROM "`, `CommentsString "\"/*\""`, `Comments " TO "`, `CommentsString "\"*/\""`,
				`Comments " NESTED\nCOMMENTS FROM "`, `CommentsString "\"//\""`, `Comments " TO "`,
				`CommentsString "\"\\n\""`, `Comments "\n"`, `Ignore "IGNORE"`}},
		{"unicode", nil, atg.Imports,
			"COMPILER Grammaire été TOKENS",
			res{`KeywordPrefix "COMPILER "`, `KeywordIdent "Grammaire"`, `ParserCode " été "`, `Tokens "TOKENS"`}},
		{"unterminatedString", nil, atg.ParserCode,
			" \"abc\nTOKENS",
			res{`ParserCode " "`, `ParserCodeString "\"abc"`, `ParserCode "\n"`, `Tokens "TOKENS"`}},
		{"escapedQuote", nil, atg.ParserCode,
			` "a\"b" `,
			res{`ParserCode " "`, `ParserCodeString "\"a\\\"b\""`, `ParserCode " "`}},
		{"escapedEOL", nil, atg.ParserCode,
			"\"a\\\nb",
			res{`ParserCodeString "\"a\\"`, `ParserCode "\nb"`}},
		{"emptyString", nil, atg.Tokens,
			`a""b`,
			res{`Tokens "a"`, `TokensString "\"\""`, `Tokens "b"`}},
		{"charWithDoubleQuote", nil, atg.ParserCode,
			`'"'x`,
			res{`ParserCodeChar "'\"'"`, `ParserCode "x"`}},
		{"unterminatedBlock", nil, atg.Tokens,
			"TOKENS /* abc",
			res{`Tokens "TOKENS "`, `TokensBlockComment "/* abc"`}},
		{"block", nil, atg.Tokens,
			"TOKENS /* c */ a",
			res{`Tokens "TOKENS "`, `TokensBlockComment "/* c */"`, `Tokens " a"`}},
		{"nested", nil, atg.Tokens,
			"/* a /* b */ c */",
			res{`TokensBlockComment "/* a /* b */ c */"`}},
		{"notNested", nonNested(), atg.Tokens,
			"/* a /* b */ c */",
			res{`TokensBlockComment "/* a /* b */"`, `Tokens " c */"`}},
		{"starStar", nil, atg.Pragmas,
			"/* a **/ b",
			res{`PragmasBlockComment "/* a **/"`, `Pragmas " b"`}},
		{"slashStarSlashNested", nil, atg.Pragmas,
			"/* /*/ x */ */y",
			res{`PragmasBlockComment "/* /*/ x */ */"`, `Pragmas "y"`}},
		{"slashStarSlash", nonNested(), atg.Pragmas,
			"/* /*/ x",
			res{`PragmasBlockComment "/* /*/"`, `Pragmas " x"`}},
		{"slashEOF", nil, atg.Tokens,
			"a /",
			res{`Tokens "a /"`}},
		{"slashSlash", nil, atg.Ignore,
			"a/ /b//c",
			res{`Ignore "a/ /b"`, `IgnoreLineComment "//c"`}},
		{"lf", nil, atg.Tokens,
			"// a\nb",
			res{`TokensLineComment "// a\n"`, `Tokens "b"`}},
		{"crlf", nil, atg.Tokens,
			"// a\r\nb",
			res{`TokensLineComment "// a\r\n"`, `Tokens "b"`}},
		{"cr", nil, atg.Tokens,
			"// a\rb",
			res{`TokensLineComment "// a\r"`, `Tokens "b"`}},
		{"crEOF", nil, atg.Tokens,
			"// a\r",
			res{`TokensLineComment "// a\r"`}},
		{"lfOnly", delims("\n"), atg.Tokens,
			"// a\rb\nc",
			res{`TokensLineComment "// a\rb\n"`, `Tokens "c"`}},
		{"crlfOnly", delims("\r\n"), atg.Tokens,
			"// a\rb\nc\r\nd",
			res{`TokensLineComment "// a\rb\nc\r\n"`, `Tokens "d"`}},
		{"lineSeparator", delims("\n", "\u2028"), atg.Tokens,
			"// a\u2028b",
			res{`TokensLineComment "// a\u2028"`, `Tokens "b"`}},
		{"stringLineSeparator", delims("\n", "\u2028"), atg.Tokens,
			"\"a\u2028b",
			res{`TokensString "\"a"`, `Tokens "\u2028b"`}},
		{"productionsCode", nil, atg.Productions,
			"A = (. x = 1; .) .",
			res{`Productions "A = "`, `ProductionsCodeStart "(."`, `ProductionsCode " x = 1; "`, `ProductionsCodeEnd ".)"`, `Productions " ."`}},
		{"codeDots", nil, atg.Productions,
			"(.a.b(); x.).",
			res{`ProductionsCodeStart "(."`, `ProductionsCode "a.b(); x"`, `ProductionsCodeEnd ".)"`, `Productions "."`}},
		{"emptyCode", nil, atg.Productions,
			"(..)",
			res{`ProductionsCodeStart "(."`, `ProductionsCodeEnd ".)"`}},
		{"codeCloseParen", nil, atg.Productions,
			"(.)x.)",
			res{`ProductionsCodeStart "(."`, `ProductionsCode ")x"`, `ProductionsCodeEnd ".)"`}},
		{"unterminatedCode", nil, atg.Productions,
			"(. abc",
			res{`ProductionsCodeStart "(."`, `ProductionsCode " abc"`}},
		{"codeNoComments", nil, atg.Productions,
			"(. \"/*\" .)",
			res{`ProductionsCodeStart "(."`, `ProductionsCode " \"/*\" "`, `ProductionsCodeEnd ".)"`}},
		{"parens", nil, atg.Productions,
			"A = (b | ( .c)) (",
			res{`Productions "A = (b | ( .c)) ("`}},
		{"pragmasCode", nil, atg.Pragmas,
			`PRAGMAS opt = "$". (. a(); .)`,
			res{`Pragmas "PRAGMAS opt = "`, `PragmasString "\"$\""`, `Pragmas ". "`, `PragmasCodeStart "(."`,
				`PragmasCode " a(); "`, `PragmasCodeEnd ".)"`}},
		{"noCodeInParserCode", nil, atg.ParserCode,
			" x = (.5);",
			res{`ParserCode " x = (.5);"`}},
		{"noCodeInTokens", nil, atg.Tokens,
			"(.a.)",
			res{`Tokens "(.a.)"`}},
		{"default", nil, atg.Productions,
			"END G.\n// x \"s\" (. y .)",
			res{`Default "END G.\n// x \"s\" "`, `CodeStart "(."`, `Code " y "`, `CodeEnd ".)"`}},
		{"keywordAtStart", nil, atg.Imports,
			"COMPILER",
			res{`KeywordPrefix "COMPILER"`}},
		{"empty", nil, atg.Tokens,
			"",
			res{}},
	}

	for _, td := range data {
		t.Run(td.name, func(t *testing.T) {
			got := render(td.src, scanIn(td.cfg, td.seg, td.src))
			if diff := cmp.Diff(td.res, got); diff != "" {
				t.Errorf("partitions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_End(t *testing.T) {
	src := "COMPILER X"
	l := atg.NewLexer(nil)
	l.Reset(strings.NewReader(src), 0, len(src))
	scanRange(l)
	for i := 0; i < 3; i++ {
		assert.Equal(t, atg.Token{Offset: len(src), Type: atg.End}, l.Next())
	}
}

func TestLexer_customKeywords(t *testing.T) {
	cfg := atg.DefaultConfig()
	cfg.Keywords = cfg.Keywords.With(atg.Keyword{Segment: atg.ParserCode, Word: "SCANNER", Target: atg.Tokens})
	src := "COMPILER X TOKENS SCANNER"
	want := res{`KeywordPrefix "COMPILER "`, `KeywordIdent "X"`, `ParserCode " TOKENS "`, `Tokens "SCANNER"`}
	assert.Equal(t, want, render(src, scan(cfg, src)))
}

const sample = `import java.util.*;

COMPILER Sample
	int count; // number of things
	String name = "COMPILER";

IGNORECASE
CHARACTERS
	letter = 'a'..'z' + "ABCDEFGHIJKLMNOPQRSTUVWXYZ".
	digit = "0123456789".
	cr = '\r'.
TOKENS
	ident = letter {letter | digit}.
	number = digit {digit}.
PRAGMAS
	option = '$' letter. (. setOption(la.val); .)
COMMENTS FROM "/*" TO "*/" NESTED
COMMENTS FROM "//" TO cr
IGNORE '\t' + '\n'
PRODUCTIONS
/* productions */
Sample = "begin" { Item (. count++; .) } "end".
Item = ident | number (. if (t.val.equals("(.")) { name = "x"; } .).
END Sample.
`

// fragments used to build random documents.
var fragments = []string{
	"COMPILER", "IGNORECASE", "CHARACTERS", "TOKENS", "PRAGMAS", "COMMENTS", "IGNORE", "PRODUCTIONS", "END",
	"(.", ".)", "/*", "*/", "//", `"`, "'", `\`, "\n", "\r", "\r\n", " ", "\t", "a", "x1", "é", "日本", "$",
	"(", ")", ".", "*", "/", "1", "=", "\u2028", "\xff",
}

func randomDocs(n int) []string {
	rnd := rand.New(rand.NewSource(42))
	docs := []string{sample}
	for i := 0; i < n; i++ {
		var sb strings.Builder
		for j := rnd.Intn(300); j > 0; j-- {
			sb.WriteString(fragments[rnd.Intn(len(fragments))])
		}
		docs = append(docs, sb.String())
	}
	return docs
}

var configs = map[string]*atg.Config{
	"default":   atg.DefaultConfig(),
	"nonNested": nonNested(),
	"lf":        delims("\n"),
	"crlf":      delims("\r\n", "\u2028"),
}

func checkTiling(t *testing.T, toks []atg.Token, offset, length int) {
	t.Helper()
	pos := offset
	for i, tok := range toks {
		require.Equalf(t, pos, tok.Offset, "token %d (%v) does not start at end of previous token", i, tok)
		require.Greaterf(t, tok.Length, 0, "token %d (%v) is empty", i, tok)
		require.NotEqual(t, atg.None, tok.Type)
		pos = tok.End()
	}
	require.Equal(t, offset+length, pos, "tokens do not cover the scan range")
}

func TestLexer_tiling(t *testing.T) {
	for name, cfg := range configs {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			rnd := rand.New(rand.NewSource(7))
			l := atg.NewLexer(cfg)
			for _, doc := range randomDocs(50) {
				l.Reset(strings.NewReader(doc), 0, len(doc))
				checkTiling(t, scanRange(l), 0, len(doc))

				// sub ranges
				for i := 0; i < 10 && len(doc) > 0; i++ {
					off := rnd.Intn(len(doc))
					n := rnd.Intn(len(doc) - off + 1)
					l.Reset(strings.NewReader(doc), off, n)
					checkTiling(t, scanRange(l), off, n)
				}
			}
		})
	}
}

func TestLexer_determinism(t *testing.T) {
	for _, doc := range randomDocs(20) {
		a := scan(nil, doc)
		b := scan(nil, doc)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("two scans differ (-first +second):\n%s", diff)
		}
	}
}

func TestLexer_Resume(t *testing.T) {
	for name, cfg := range configs {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			l := atg.NewLexer(cfg)
			for n, doc := range randomDocs(30) {
				full := scan(cfg, doc)
				prior := atg.None
				for i, tok := range full {
					l.Resume(strings.NewReader(doc), tok.Offset, len(doc)-tok.Offset,
						atg.Restart{Type: tok.Type, Start: tok.Offset, Prior: prior})
					got := scanRange(l)
					if diff := cmp.Diff(full[i:], got); diff != "" {
						t.Fatalf("doc %d: resume at %v (-full +resumed):\n%s", n, tok, diff)
					}
					prior = tok.Type
				}
			}
		})
	}
}

func TestLexer_ResumeInside(t *testing.T) {
	src := "TOKENS /* a /* b */ c */ x"
	l := atg.NewLexer(nil)
	l.Resume(strings.NewReader(src), 12, len(src)-12, atg.Restart{Type: atg.TokensBlockComment, Start: 7, Prior: atg.Tokens})
	want := res{`TokensBlockComment "/* a /* b */ c */"`, `Tokens " x"`}
	assert.Equal(t, want, render(src, scanRange(l)))

	src = "PRODUCTIONS A = (. x = 1; .) ."
	l.Resume(strings.NewReader(src), 20, len(src)-20, atg.Restart{Type: atg.ProductionsCode, Start: 18, Prior: atg.ProductionsCodeStart})
	want = res{`ProductionsCode " x = 1; "`, `ProductionsCodeEnd ".)"`, `Productions " ."`}
	assert.Equal(t, want, render(src, scanRange(l)))
}

func TestLexer_ResumeDefault(t *testing.T) {
	src := "import x;\nCOMPILER X"
	l := atg.NewLexer(nil)
	// an unknown or default first partition is the import section
	for _, at := range []atg.Restart{{Type: atg.Default}, {Type: atg.None}, {Type: atg.Default, Start: 0, Prior: atg.Productions}} {
		l.Resume(strings.NewReader(src), 0, len(src), at)
		got := render(src, scanRange(l))
		assert.Equal(t, res{`Imports "import x;\n"`, `KeywordPrefix "COMPILER "`, `KeywordIdent "X"`}, got, fmt.Sprint(at))
	}
}
