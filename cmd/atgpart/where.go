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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/atg/document"
	"github.com/spf13/cobra"
)

var errPosition = errors.New("invalid position")

func newWhereCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "where FILE OFFSET|LINE:COL",
		Short: "Print the partition at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0])
			if err != nil {
				return err
			}
			offset, err := parsePosition(d.Lines(), args[1])
			if err != nil {
				return err
			}
			return where(cmd.OutOrStdout(), d, offset)
		},
	}
}

// parsePosition parses a byte offset or a 1-based line:column position.
//
func parsePosition(lines *document.Lines, s string) (int, error) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		line, err := strconv.Atoi(s[:i])
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", errPosition, s, err)
		}
		col, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", errPosition, s, err)
		}
		start := lines.LineStart(line)
		if start < 0 || col < 1 {
			return 0, fmt.Errorf("%w %q", errPosition, s)
		}
		return start + col - 1, nil
	}
	offset, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", errPosition, s, err)
	}
	return offset, nil
}

// where reports the partition at offset in the form:
//
//	file:line:col: Type [offset,+length) #index
//	|source line
//	|    ^
//
func where(w io.Writer, d *document.Document, offset int) error {
	p, i := d.PartitionAt(offset)
	if i < 0 {
		return fmt.Errorf("%w: offset %d not in %s", errPosition, offset, d.Name())
	}
	pos := d.Lines().Position(offset)
	fmt.Fprintf(w, "%s: %s [%d,+%d) #%d\n", pos, paint(p.Type, p.Type.String()), p.Offset, p.Length, i)
	l, err := d.Lines().Line(pos.Line)
	if err != nil {
		return nil
	}
	b := pos.Column - 1
	if b > len(l) {
		b = len(l)
	}
	fmt.Fprintf(w, "|%s\n", l)
	fmt.Fprintf(w, "|%s^\n", document.Blank(l[:b]))
	return nil
}
