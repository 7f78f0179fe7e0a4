// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchrec reconstructs typed benchmark records from the
// encoded names of Google Benchmark entries.
//
// A benchmark name such as
//
//	suiteA :: sortBench :: quicksort[median3]/1024/1/5/manual_time
//
// encodes the benchmark group, the experiment, the algorithm under
// test with an optional bracketed variant tag, and two size
// parameters. An Extractor matches names against a Grammar and
// combines them with the entry's measurements into a Record.
package benchrec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Record is one benchmark data point. Records are created by an
// Extractor and never modified afterwards.
type Record struct {
	Group      string
	Experiment string
	Algorithm  string

	// Options is the content of the bracketed variant tag
	// following the algorithm name. HasOptions distinguishes an
	// absent tag from an empty one ("algo[]").
	Options    string
	HasOptions bool

	BaseSize       float64
	ExperimentSize float64

	CPUTime    float64
	RealTime   float64
	Iterations float64
	TimeUnit   string

	// FullAlgorithmKey combines Algorithm and Options for display
	// and grouping, e.g. "quicksort [median3]".
	FullAlgorithmKey string
}

// fullKey renders the display key for an algorithm and its options.
// Absent options still get an empty bracket so keys of tagged and
// untagged variants line up.
func fullKey(algorithm, options string) string {
	return algorithm + " [" + options + "]"
}

// Get returns the value of the named field of r.
func (r *Record) Get(name string) (Value, error) {
	f, ok := LookupField(name)
	if !ok {
		return Value{}, fmt.Errorf("unknown field %q", name)
	}
	return f.Get(r), nil
}

// TimeUnits returns the distinct time units used by recs, in order of
// first appearance. More than one unit means timings in recs are not
// directly comparable; units are never converted.
func TimeUnits(recs []*Record) []string {
	var units []string
	seen := make(map[string]bool)
	for _, r := range recs {
		if !seen[r.TimeUnit] {
			seen[r.TimeUnit] = true
			units = append(units, r.TimeUnit)
		}
	}
	return units
}

// A Kind is the type of a record field.
type Kind int

const (
	String Kind = iota
	Number
	// OptionalString is a string that may be absent. An absent
	// value reads as "".
	OptionalString
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case OptionalString:
		return "optional string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Field is a named, typed accessor for one Record field.
type Field struct {
	Name string
	Kind Kind
	get  func(r *Record) Value
}

// Get returns the value of f in r.
func (f *Field) Get(r *Record) Value {
	return f.get(r)
}

func strField(name string, get func(r *Record) string) *Field {
	return &Field{name, String, func(r *Record) Value { return StringValue(get(r)) }}
}

func numField(name string, get func(r *Record) float64) *Field {
	return &Field{name, Number, func(r *Record) Value { return NumberValue(get(r)) }}
}

var fields = []*Field{
	strField("group", func(r *Record) string { return r.Group }),
	strField("experiment", func(r *Record) string { return r.Experiment }),
	strField("algorithm", func(r *Record) string { return r.Algorithm }),
	{"algorithm_options", OptionalString, func(r *Record) Value {
		if !r.HasOptions {
			return Value{kind: OptionalString}
		}
		return Value{kind: OptionalString, s: r.Options, present: true}
	}},
	numField("base_size", func(r *Record) float64 { return r.BaseSize }),
	numField("experiment_size", func(r *Record) float64 { return r.ExperimentSize }),
	numField("cpu_time", func(r *Record) float64 { return r.CPUTime }),
	numField("real_time", func(r *Record) float64 { return r.RealTime }),
	numField("iterations", func(r *Record) float64 { return r.Iterations }),
	strField("time_unit", func(r *Record) string { return r.TimeUnit }),
	strField("full_algorithm_key", func(r *Record) string { return r.FullAlgorithmKey }),
}

// aliases maps the field names used by older plot configurations.
var aliases = map[string]string{
	"algopts":   "algorithm_options",
	"full_algo": "full_algorithm_key",
}

var fieldsByName = func() map[string]*Field {
	m := make(map[string]*Field, len(fields)+len(aliases))
	for _, f := range fields {
		m[f.Name] = f
	}
	for alias, name := range aliases {
		m[alias] = m[name]
	}
	return m
}()

// LookupField returns the field with the given name or alias.
func LookupField(name string) (*Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// Fields returns the canonical field names in declaration order.
func Fields() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// A Value is the value of one record field.
type Value struct {
	kind    Kind
	s       string
	f       float64
	present bool
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: String, s: s, present: true}
}

// NumberValue returns a numeric Value.
func NumberValue(f float64) Value {
	return Value{kind: Number, f: f, present: true}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Present reports whether v holds a value. Only OptionalString values
// can be absent.
func (v Value) Present() bool {
	return v.present
}

// String returns v coerced to a string. Numbers are formatted in
// shortest round-trip form, with integral values keeping a trailing
// ".0" (1024 formats as "1024.0"). An absent value is "".
func (v Value) String() string {
	if v.kind == Number {
		return FormatNumber(v.f)
	}
	return v.s
}

// Float returns v coerced to a float64. Strings are parsed after
// trimming surrounding white space.
func (v Value) Float() (float64, error) {
	switch {
	case v.kind == Number:
		return v.f, nil
	case !v.present:
		return 0, fmt.Errorf("absent value is not a number")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", v.s)
	}
	return f, nil
}

// FormatNumber formats x the way Value.String does.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	ax := math.Abs(x)
	if ax != 0 && (ax >= 1e16 || ax < 1e-4) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if x == math.Trunc(x) {
		s += ".0"
	}
	return s
}
