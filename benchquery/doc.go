// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package benchquery selects benchmark records with declarative,
JSON-shaped boolean queries.

A query is a tree of specs. A leaf tests one record field:

	{"field": "algorithm", "match": "sort"}
	{"field": "base_size", "min": 1000}
	{"field": "algorithm_options", "match": "median", "negate": true}

"match" tests that the field, as a string, contains the given
substring. "min" tests that the field, as a number, is at least the
given value. A leaf must carry exactly one of "match", "min" and
"max".

A set leaf is a disjunction of substring tests on one field:

	{"kind": "set", "field": "algorithm", "set": ["quicksort", "mergesort"]}

Leaves combine with "and" and "or":

	{"kind": "or", "sub": [{...}, {...}]}

A bare JSON array is shorthand for "and":

	[{"field": "group", "match": "suiteA"}, {"field": "base_size", "min": "1000"}]

Compile validates a whole tree before anything is evaluated and
returns a Predicate. Predicate.Select applies it to a record
collection and keeps matching records in their original order.

# The max bound

The query format this package reads has always compared "max" leaves
against the leaf's "min" value, which a valid leaf never has. Compile
keeps that behavior and rejects such leaves. WithCorrectedMax
compares against "max" instead.
*/
package benchquery
