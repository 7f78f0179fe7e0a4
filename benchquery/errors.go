// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchquery

import "fmt"

// A QueryError reports a malformed query. Spec is the offending query
// fragment.
type QueryError struct {
	Spec string
	Msg  string
}

func (e *QueryError) Error() string {
	if e.Spec == "" {
		return "bad query: " + e.Msg
	}
	return fmt.Sprintf("bad query %s: %s", e.Spec, e.Msg)
}

// An EvalError reports a record field that could not be coerced to
// the type a leaf compares against, such as a "min" test on a
// non-numeric field. It fails the whole selection.
type EvalError struct {
	Spec  string // the leaf being evaluated
	Index int    // index of the record in the selected collection
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %s on record %d: %v", e.Spec, e.Index, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
