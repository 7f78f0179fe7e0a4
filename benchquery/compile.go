// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchquery

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/benchplot/benchrec"
)

// A Predicate is a compiled query. It is immutable and safe for
// concurrent use.
type Predicate struct {
	match matchFn
	spec  Spec
}

// matchFn tests a single record. A non-nil error is always an
// *EvalError with Index unset.
type matchFn func(r *benchrec.Record) (bool, error)

// An Option changes how Compile interprets a query.
type Option func(*compiler)

// WithCorrectedMax makes "max" leaves compare against their own
// "max" bound rather than "min".
func WithCorrectedMax() Option {
	return func(c *compiler) { c.correctedMax = true }
}

type compiler struct {
	correctedMax bool
}

// Compile validates q and compiles it into a Predicate. It returns a
// *QueryError naming the offending fragment if any node is
// malformed: an unknown field, a leaf without exactly one test, a
// non-numeric bound, or an empty composition.
func Compile(q Spec, opts ...Option) (*Predicate, error) {
	var c compiler
	for _, o := range opts {
		o(&c)
	}
	fn, err := c.walk(q)
	if err != nil {
		return nil, err
	}
	return &Predicate{fn, q}, nil
}

// CompileJSON parses and compiles a JSON query.
func CompileJSON(data []byte, opts ...Option) (*Predicate, error) {
	q, err := ParseSpec(data)
	if err != nil {
		return nil, err
	}
	return Compile(q, opts...)
}

func (c *compiler) walk(q Spec) (matchFn, error) {
	switch q := q.(type) {
	case *Simple:
		return c.simple(q)

	case *Set:
		f, ok := benchrec.LookupField(q.Field)
		if !ok {
			return nil, &QueryError{q.String(), fmt.Sprintf("unknown field %q", q.Field)}
		}
		if len(q.Values) == 0 {
			return nil, &QueryError{q.String(), "empty set"}
		}
		subs := make([]matchFn, len(q.Values))
		for i, v := range q.Values {
			subs[i] = matchLeaf(f, v)
		}
		return negate(q.Negate, or(subs)), nil

	case *And:
		subs, err := c.walkSubs(q, q.Subs)
		if err != nil {
			return nil, err
		}
		return and(subs), nil

	case *Or:
		subs, err := c.walkSubs(q, q.Subs)
		if err != nil {
			return nil, err
		}
		return or(subs), nil

	case nil:
		return nil, &QueryError{"null", "missing query"}
	}
	panic(fmt.Sprintf("unknown query node type %T", q))
}

func (c *compiler) walkSubs(q Spec, subs []Spec) ([]matchFn, error) {
	if len(subs) == 0 {
		return nil, &QueryError{q.String(), "empty sub-query list"}
	}
	fns := make([]matchFn, len(subs))
	for i, sub := range subs {
		var err error
		if fns[i], err = c.walk(sub); err != nil {
			return nil, err
		}
	}
	return fns, nil
}

func (c *compiler) simple(q *Simple) (matchFn, error) {
	f, ok := benchrec.LookupField(q.Field)
	if !ok {
		return nil, &QueryError{q.String(), fmt.Sprintf("unknown field %q", q.Field)}
	}
	n := 0
	for _, p := range []*string{q.Match, q.Min, q.Max} {
		if p != nil {
			n++
		}
	}
	if n != 1 {
		return nil, &QueryError{q.String(), `need exactly one of "match", "min" and "max"`}
	}

	var fn matchFn
	switch {
	case q.Match != nil:
		fn = matchLeaf(f, *q.Match)

	case q.Min != nil:
		lo, err := bound(q, "min", q.Min)
		if err != nil {
			return nil, err
		}
		fn = numLeaf(q, f, func(x float64) bool { return x >= lo })

	case q.Max != nil:
		// Historically the upper bound is read from "min", which a
		// valid "max" leaf never carries.
		if !c.correctedMax {
			return nil, &QueryError{q.String(), `"max" compares against "min", which is not set (see WithCorrectedMax)`}
		}
		hi, err := bound(q, "max", q.Max)
		if err != nil {
			return nil, err
		}
		fn = numLeaf(q, f, func(x float64) bool { return x <= hi })
	}
	return negate(q.Negate, fn), nil
}

func bound(q *Simple, key string, s *string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return 0, &QueryError{q.String(), fmt.Sprintf("%s: %q is not a number", key, *s)}
	}
	return x, nil
}

func matchLeaf(f *benchrec.Field, lit string) matchFn {
	return func(r *benchrec.Record) (bool, error) {
		return strings.Contains(f.Get(r).String(), lit), nil
	}
}

func numLeaf(q *Simple, f *benchrec.Field, test func(float64) bool) matchFn {
	return func(r *benchrec.Record) (bool, error) {
		x, err := f.Get(r).Float()
		if err != nil {
			return false, &EvalError{Spec: q.String(), Err: fmt.Errorf("field %s: %w", f.Name, err)}
		}
		return test(x), nil
	}
}

func negate(neg bool, fn matchFn) matchFn {
	if !neg {
		return fn
	}
	return func(r *benchrec.Record) (bool, error) {
		x, err := fn(r)
		return !x, err
	}
}

func and(subs []matchFn) matchFn {
	if len(subs) == 1 {
		return subs[0]
	}
	return func(r *benchrec.Record) (bool, error) {
		for _, sub := range subs {
			x, err := sub(r)
			if err != nil || !x {
				// Short-circuit
				return false, err
			}
		}
		return true, nil
	}
}

func or(subs []matchFn) matchFn {
	if len(subs) == 1 {
		return subs[0]
	}
	return func(r *benchrec.Record) (bool, error) {
		for _, sub := range subs {
			x, err := sub(r)
			if err != nil || x {
				// Short-circuit
				return x, err
			}
		}
		return false, nil
	}
}

// Spec returns the query p was compiled from.
func (p *Predicate) Spec() Spec {
	return p.spec
}

func (p *Predicate) String() string {
	return p.spec.String()
}

// Match reports whether r satisfies p.
func (p *Predicate) Match(r *benchrec.Record) (bool, error) {
	return p.match(r)
}

// Select returns the records of recs that satisfy p, in their
// original order. If any record cannot be evaluated, Select returns
// an *EvalError and no records.
func (p *Predicate) Select(recs []*benchrec.Record) ([]*benchrec.Record, error) {
	var out []*benchrec.Record
	for i, r := range recs {
		ok, err := p.match(r)
		if err != nil {
			if ee, isEval := err.(*EvalError); isEval {
				ee.Index = i
			}
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Select is shorthand for p.Select(recs).
func Select(recs []*benchrec.Record, p *Predicate) ([]*benchrec.Record, error) {
	return p.Select(recs)
}
