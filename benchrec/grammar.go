// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"fmt"
	"regexp"
	"strconv"
)

// A Grammar matches encoded benchmark names of the form
//
//	<group> :: <experiment> :: <algorithm>[<options>]/<base_size>/<experiment_size><trailer>
//
// Group and experiment are runs of non-space characters. The
// algorithm excludes white space, '[' and '/'; the bracketed options
// tag is optional and may not contain ']'. Sizes are unsigned decimal
// integers. Grammars differ only in what they accept as trailer.
type Grammar struct {
	name string
	re   *regexp.Regexp

	group, experiment, algorithm, options, baseSize, experimentSize int
}

const namePrefix = `^(?P<group>\S+) :: (?P<experiment>\S+) :: (?P<algorithm>[^\s\[/]+)(?:\[(?P<options>[^\]]*)\])?/(?P<base_size>\d+)/(?P<experiment_size>\d+)`

var (
	// Strict requires the repetition count and the manual-time
	// marker that benchmarks using manual timing append, as in
	// ".../1024/1/5/manual_time". Anything after the marker is
	// not examined.
	Strict = MustGrammar("strict", `/\d+/manual_time`)

	// Lenient accepts any '/'-delimited trailer after the sizes,
	// including none.
	Lenient = MustGrammar("lenient", `(?:/.*)?$`)
)

// NewGrammar returns a Grammar whose trailer is the regular
// expression fragment trailer. name is used in error messages.
func NewGrammar(name, trailer string) (*Grammar, error) {
	re, err := regexp.Compile(namePrefix + trailer)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", name, err)
	}
	g := &Grammar{
		name:           name,
		re:             re,
		group:          re.SubexpIndex("group"),
		experiment:     re.SubexpIndex("experiment"),
		algorithm:      re.SubexpIndex("algorithm"),
		options:        re.SubexpIndex("options"),
		baseSize:       re.SubexpIndex("base_size"),
		experimentSize: re.SubexpIndex("experiment_size"),
	}
	return g, nil
}

// MustGrammar is like NewGrammar but panics on error.
func MustGrammar(name, trailer string) *Grammar {
	g, err := NewGrammar(name, trailer)
	if err != nil {
		panic(err)
	}
	return g
}

// LookupGrammar returns the predefined grammar with the given name.
func LookupGrammar(name string) (*Grammar, bool) {
	switch name {
	case "strict":
		return Strict, true
	case "lenient":
		return Lenient, true
	}
	return nil, false
}

func (g *Grammar) String() string {
	return g.name
}

// A Name is the decoded form of a benchmark name.
type Name struct {
	Group      string
	Experiment string
	Algorithm  string
	Options    string
	HasOptions bool

	BaseSize       float64
	ExperimentSize float64
}

// Parse decodes name. It reports false if name does not match g.
func (g *Grammar) Parse(name string) (Name, bool) {
	m := g.re.FindStringSubmatchIndex(name)
	if m == nil {
		return Name{}, false
	}
	sub := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return name[m[2*i]:m[2*i+1]]
	}
	n := Name{
		Group:      sub(g.group),
		Experiment: sub(g.experiment),
		Algorithm:  sub(g.algorithm),
		Options:    sub(g.options),
		HasOptions: m[2*g.options] >= 0,
	}
	// Sizes are kept as floats so they mix freely with timings.
	var err error
	if n.BaseSize, err = strconv.ParseFloat(sub(g.baseSize), 64); err != nil {
		return Name{}, false
	}
	if n.ExperimentSize, err = strconv.ParseFloat(sub(g.experimentSize), 64); err != nil {
		return Name{}, false
	}
	return n, true
}
