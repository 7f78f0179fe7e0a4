// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit interprets benchmark time units and formats
// numbers for chart axes.
//
// Google Benchmark reports each entry's timings in the entry's own
// "time_unit". Values are carried through in that unit; this package
// recognizes units and detects batches that mix them, but it never
// converts between them.
package benchunit

import (
	"fmt"
	"strings"
)

// timeUnits is the set of units Google Benchmark writes.
var timeUnits = map[string]bool{
	"ns": true,
	"us": true,
	"ms": true,
	"s":  true,
}

// IsTime reports whether unit is a time unit Google Benchmark writes.
func IsTime(unit string) bool {
	return timeUnits[unit]
}

// A MixedUnitsError reports a record set whose timings use more than
// one unit. Such timings are not directly comparable.
type MixedUnitsError struct {
	Units []string
}

func (e *MixedUnitsError) Error() string {
	return fmt.Sprintf("timings use mixed units (%s); values are not converted", strings.Join(e.Units, ", "))
}

// CheckUnits returns a *MixedUnitsError if units holds more than one
// distinct unit, or an error if any unit is not a time unit.
func CheckUnits(units []string) error {
	for _, u := range units {
		if !IsTime(u) {
			return fmt.Errorf("unknown time unit %q", u)
		}
	}
	if len(units) > 1 {
		return &MixedUnitsError{units}
	}
	return nil
}
