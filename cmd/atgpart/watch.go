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
	"os"
	"os/signal"
	"path/filepath"
	"unicode/utf8"

	"github.com/db47h/atg"
	"github.com/db47h/atg/document"
	"github.com/db47h/atg/internal/logfields"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-partition a grammar file whenever it changes",
		Long: "watch partitions a grammar file, then waits for changes to the file. " +
			"On every change, it re-partitions the edited region and prints the partitions that changed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Clean(args[0])
			d, err := a.load(path)
			if err != nil {
				return err
			}
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("creating fsnotify watcher: %w", err)
			}
			defer watcher.Close()
			// watch the directory: editors often replace files on save.
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			log := a.log.WithField(logfields.File, path)
			log.WithField(logfields.Partitions, len(d.Partitions())).Info("Watching for changes")
			out := cmd.OutOrStdout()
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != path {
						continue
					}
					log.WithField(logfields.Event, event).Debug("Received fsnotify event")
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
						continue
					}
					b, err := os.ReadFile(path)
					if err != nil {
						log.WithError(err).Warn("Unable to read file")
						continue
					}
					if err := update(out, log, d, string(b)); err != nil {
						return err
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.WithError(err).Warn("fsnotify error")
				}
			}
		},
	}
}

// update applies the difference between the current text of d and text as a
// single edit, then prints the partitions in the damaged region.
//
func update(w io.Writer, log logrus.FieldLogger, d *document.Document, text string) error {
	offset, length, repl, ok := diff(d.Text(), text)
	if !ok {
		return nil
	}
	r, err := d.Replace(offset, length, repl)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		logfields.Offset: offset,
		logfields.Length: length,
		logfields.Region: r,
	}).Info("Document changed")

	lines := d.Lines()
	for _, p := range d.Partitions() {
		if !overlaps(p, r) {
			continue
		}
		pos := lines.Position(p.Offset)
		fmt.Fprintf(w, "%s %s [%d,+%d)\n", pos, paint(p.Type, p.Type.String()), p.Offset, p.Length)
	}
	return nil
}

func overlaps(p atg.Token, r document.Region) bool {
	if r.Length == 0 {
		return p.Offset <= r.Offset && r.Offset <= p.End()
	}
	return p.Offset < r.End() && r.Offset < p.End()
}

func runeStart(s string, i int) bool {
	return i >= len(s) || utf8.RuneStart(s[i])
}

// diff returns the edit that turns prev into next: replacing length bytes at
// offset by repl, cut at rune boundaries. It returns false if prev and next
// are identical.
//
func diff(prev, next string) (offset, length int, repl string, ok bool) {
	if prev == next {
		return 0, 0, "", false
	}
	n := len(prev)
	if len(next) < n {
		n = len(next)
	}
	for offset < n && prev[offset] == next[offset] {
		offset++
	}
	s := 0
	for s < n-offset && prev[len(prev)-1-s] == next[len(next)-1-s] {
		s++
	}
	// keep whole runes on both sides of the edit.
	for offset > 0 && (!runeStart(prev, offset) || !runeStart(next, offset)) {
		offset--
	}
	for s > 0 && (!runeStart(prev, len(prev)-s) || !runeStart(next, len(next)-s)) {
		s--
	}
	return offset, len(prev) - offset - s, next[offset : len(next)-s], true
}
