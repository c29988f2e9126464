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

package main

import (
	"fmt"
	"io"

	"github.com/db47h/atg/document"
	"github.com/db47h/atg/internal/sublex"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	var text, sub bool
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the partitions of a grammar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0])
			if err != nil {
				return err
			}
			var lexers []*sublex.Lexer
			if sub {
				lexers = []*sublex.Lexer{sublex.Java(), sublex.Notation()}
			}
			return dump(cmd.OutOrStdout(), d, text, lexers)
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "Print the contents of each partition")
	cmd.Flags().BoolVar(&sub, "sublex", false, "Tokenise host code and grammar notation partitions")
	return cmd
}

// dump prints the partitions of d, one per line, in the form
//
//	line:col Type offset length ["text"]
//
// followed by their sub-tokens if any of lexers accepts them.
//
func dump(w io.Writer, d *document.Document, text bool, lexers []*sublex.Lexer) error {
	lines := d.Lines()
	src := d.Text()
	for _, p := range d.Partitions() {
		pos := lines.Position(p.Offset)
		fmt.Fprintf(w, "%-8s %s %6d %5d",
			fmt.Sprintf("%d:%d", pos.Line, pos.Column),
			paint(p.Type, fmt.Sprintf("%-23s", p.Type)),
			p.Offset, p.Length)
		if text {
			fmt.Fprintf(w, " %q", src[p.Offset:p.End()])
		}
		fmt.Fprintln(w)
		for _, l := range lexers {
			if !l.Accepts(p.Type) {
				continue
			}
			toks, err := l.Tokenise(src, p)
			if err != nil {
				return err
			}
			for _, t := range toks {
				fmt.Fprintf(w, "\t%-20s %q\n", t.Kind, src[t.Offset:t.Offset+t.Length])
			}
		}
	}
	return nil
}
