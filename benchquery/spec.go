// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchquery

import (
	"strconv"
	"strings"
)

// A Spec is a node in a declarative query. It is one of *Simple,
// *Set, *And or *Or.
type Spec interface {
	isSpec()

	// String renders the node as canonical JSON. It is used to
	// identify the node in errors.
	String() string
}

// A Simple is a leaf test on one record field. Exactly one of Match,
// Min and Max must be set.
type Simple struct {
	Field string

	// Match is a case-sensitive substring of the field's string
	// form.
	Match *string

	// Min and Max are numeric bounds, kept in their original
	// textual form and parsed when the query is compiled.
	Min *string
	Max *string

	// Negate inverts the result of the test.
	Negate bool
}

// A Set matches if the field contains any of Values as a substring.
// Negate inverts the result of the whole disjunction.
type Set struct {
	Field  string
	Values []string
	Negate bool
}

// An And matches if all of Subs match. Subs must not be empty.
type And struct {
	Subs []Spec
}

// An Or matches if any of Subs match. Subs must not be empty.
type Or struct {
	Subs []Spec
}

func (*Simple) isSpec() {}
func (*Set) isSpec()    {}
func (*And) isSpec()    {}
func (*Or) isSpec()     {}

// Str returns a pointer to s, for building Simple specs.
func Str(s string) *string {
	return &s
}

func (q *Simple) String() string {
	var b strings.Builder
	b.WriteString(`{"field":`)
	b.WriteString(strconv.Quote(q.Field))
	for _, kv := range []struct {
		key string
		val *string
	}{{"match", q.Match}, {"min", q.Min}, {"max", q.Max}} {
		if kv.val != nil {
			b.WriteString(`,"` + kv.key + `":`)
			b.WriteString(strconv.Quote(*kv.val))
		}
	}
	if q.Negate {
		b.WriteString(`,"negate":true`)
	}
	b.WriteByte('}')
	return b.String()
}

func (q *Set) String() string {
	var b strings.Builder
	b.WriteString(`{"kind":"set","field":`)
	b.WriteString(strconv.Quote(q.Field))
	b.WriteString(`,"set":[`)
	for i, v := range q.Values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(v))
	}
	b.WriteByte(']')
	if q.Negate {
		b.WriteString(`,"negate":true`)
	}
	b.WriteByte('}')
	return b.String()
}

func (q *And) String() string {
	return opString("and", q.Subs)
}

func (q *Or) String() string {
	return opString("or", q.Subs)
}

func opString(kind string, subs []Spec) string {
	var b strings.Builder
	b.WriteString(`{"kind":"` + kind + `","sub":[`)
	for i, sub := range subs {
		if i > 0 {
			b.WriteByte(',')
		}
		if sub == nil {
			b.WriteString("null")
			continue
		}
		b.WriteString(sub.String())
	}
	b.WriteString("]}")
	return b.String()
}
