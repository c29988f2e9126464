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
	"os"

	"github.com/db47h/atg"
	"github.com/db47h/atg/document"
	"github.com/db47h/atg/internal/config"
	"github.com/db47h/atg/internal/logfields"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by all commands.
//
type app struct {
	opts config.Options
	vp   *viper.Viper
	log  *logrus.Logger
	cfg  *atg.Config
}

func newRootCmd() *cobra.Command {
	a := &app{
		vp:  config.NewViper(),
		log: logrus.New(),
	}
	root := &cobra.Command{
		Use:   "atgpart",
		Short: "Partition Coco/R grammar files",
		Long: "atgpart splits Coco/R attributed grammar files into partitions: " +
			"grammar segments, embedded Java code, strings and comments.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	a.opts.Flags(root.PersistentFlags())
	root.AddCommand(
		newDumpCmd(a),
		newWhereCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	if err := a.opts.Load(a.vp, cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if a.opts.Debug {
		a.log.SetLevel(logrus.DebugLevel)
	}
	if a.opts.NoColor {
		color.NoColor = true
	}
	cfg, err := a.opts.LexerConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.opts.Config != "" {
		a.log.WithField(logfields.Config, a.opts.Config).Debug("Configuration loaded")
	}
	return nil
}

// load reads and partitions the named file.
//
func (a *app) load(name string) (*document.Document, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("loading grammar: %w", err)
	}
	return document.New(a.cfg, name, string(b), document.WithLogger(a.log)), nil
}

var (
	segmentColor   = color.New(color.FgYellow, color.Bold).SprintFunc()
	literalColor   = color.New(color.FgGreen).SprintFunc()
	commentColor   = color.New(color.FgHiBlack).SprintFunc()
	delimiterColor = color.New(color.FgMagenta).SprintFunc()
	hostCodeColor  = color.New(color.FgCyan).SprintFunc()
)

// paint colors s according to the partition type t.
//
func paint(t atg.Type, s string) string {
	switch {
	case t.IsHostCode():
		return hostCodeColor(s)
	case t.IsSegment():
		return segmentColor(s)
	case t.IsLiteral():
		return literalColor(s)
	case t.IsComment():
		return commentColor(s)
	case t.IsDelimiter():
		return delimiterColor(s)
	}
	return s
}
