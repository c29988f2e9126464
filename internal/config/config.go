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

// Package config loads the lexer configuration from command line flags,
// environment variables and a YAML configuration file.
//
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/db47h/atg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding settings. For
// example ATGPART_NESTED_COMMENTS overrides nested-comments.
//
const EnvPrefix = "atgpart"

// Configuration errors.
//
var (
	ErrUnknownSegment = errors.New("unknown segment")
	ErrKeyword        = errors.New("invalid keyword rule")
	ErrDelimiter      = errors.New("invalid line delimiter")
)

// named line delimiters
//
var delimiters = map[string]string{
	"lf":   "\n",
	"crlf": "\r\n",
	"cr":   "\r",
	"nel":  "\u0085",
	"ls":   "\u2028",
	"ps":   "\u2029",
}

// Options holds the settings of the atgpart command.
//
type Options struct {
	Config         string   `mapstructure:"config"`
	Debug          bool     `mapstructure:"debug"`
	NoColor        bool     `mapstructure:"no-color"`
	NestedComments bool     `mapstructure:"nested-comments"`
	LineDelimiters []string `mapstructure:"line-delimiters"`
	// Keywords maps segment names to their terminators, in the form
	// WORD:target. Listed segments have their default terminators replaced.
	Keywords map[string][]string `mapstructure:"keywords"`
}

// Flags registers the flags for o in flags.
//
func (o *Options) Flags(flags *pflag.FlagSet) {
	flags.StringVar(&o.Config, "config", "", "Path to a YAML configuration file")
	flags.BoolVarP(&o.Debug, "debug", "D", false, "Enable debug messages")
	flags.BoolVar(&o.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&o.NestedComments, "nested-comments", true, "Allow nesting of block comments")
	flags.StringSliceVar(&o.LineDelimiters, "line-delimiters", []string{"lf", "crlf", "cr"},
		"Legal line delimiters: lf, crlf, cr, nel, ls, ps or literal strings")
}

// NewViper returns a viper instance that reads settings from the environment.
//
func NewViper() *viper.Viper {
	vp := viper.New()
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()
	return vp
}

// Load merges flags, the environment and the configuration file named by the
// config setting, in decreasing order of priority, into o.
//
func (o *Options) Load(vp *viper.Viper, flags *pflag.FlagSet) error {
	if err := vp.BindPFlags(flags); err != nil {
		return err
	}
	if path := vp.GetString("config"); path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return fmt.Errorf("reading configuration file %s: %w", path, err)
		}
	}
	// decode into a zero value: mapstructure merges slices element-wise.
	var merged Options
	if err := vp.Unmarshal(&merged); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}
	*o = merged
	return nil
}

// LexerConfig returns the lexer configuration for o.
//
func (o *Options) LexerConfig() (*atg.Config, error) {
	cfg := atg.DefaultConfig()
	cfg.NestedComments = o.NestedComments
	if len(o.LineDelimiters) > 0 {
		cfg.LineDelimiters = nil
		for _, d := range o.LineDelimiters {
			s, err := ParseDelimiter(d)
			if err != nil {
				return nil, err
			}
			cfg.LineDelimiters = append(cfg.LineDelimiters, s)
		}
	}
	if len(o.Keywords) > 0 {
		kw, err := o.keywords(cfg.Keywords)
		if err != nil {
			return nil, err
		}
		cfg.Keywords = kw
	}
	return cfg, nil
}

// ParseDelimiter returns the line delimiter for a delimiter name or literal.
//
func ParseDelimiter(d string) (string, error) {
	if s, ok := delimiters[strings.ToLower(d)]; ok {
		return s, nil
	}
	if d == "" {
		return "", fmt.Errorf("%w: empty delimiter", ErrDelimiter)
	}
	return d, nil
}

func (o *Options) keywords(defaults *atg.Keywords) (*atg.Keywords, error) {
	replaced := make(map[atg.Type]bool)
	var rules []atg.Keyword

	names := make([]string, 0, len(o.Keywords))
	for name := range o.Keywords {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		seg, ok := atg.TypeByName(name)
		if !ok || !seg.IsSegment() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, name)
		}
		replaced[seg] = true
		seen := make(map[string]bool)
		for _, r := range o.Keywords[name] {
			kw, err := parseKeyword(seg, r)
			if err != nil {
				return nil, err
			}
			if seen[kw.Word] {
				return nil, fmt.Errorf("%w: %s registered twice in %s", ErrKeyword, kw.Word, seg)
			}
			seen[kw.Word] = true
			rules = append(rules, kw)
		}
	}

	var kw []atg.Keyword
	for _, r := range defaults.Rules() {
		if !replaced[r.Segment] {
			kw = append(kw, r)
		}
	}
	return atg.NewKeywords(append(kw, rules...)...), nil
}

// parseKeyword parses a WORD:target rule for segment seg.
//
func parseKeyword(seg atg.Type, rule string) (atg.Keyword, error) {
	i := strings.LastIndexByte(rule, ':')
	if i < 0 {
		return atg.Keyword{}, fmt.Errorf("%w: %q: expected WORD:target", ErrKeyword, rule)
	}
	word, target := rule[:i], rule[i+1:]
	for j, r := range word {
		if j == 0 && !atg.IsIdentStart(r) || !atg.IsIdentPart(r) {
			return atg.Keyword{}, fmt.Errorf("%w: %q: %q is not an identifier", ErrKeyword, rule, word)
		}
	}
	if word == "" {
		return atg.Keyword{}, fmt.Errorf("%w: %q: empty keyword", ErrKeyword, rule)
	}
	t, ok := atg.TypeByName(target)
	if !ok || !t.IsSegment() && t != atg.KeywordPrefix {
		return atg.Keyword{}, fmt.Errorf("%w: %q", ErrUnknownSegment, target)
	}
	return atg.Keyword{Segment: seg, Word: word, Target: t}, nil
}
