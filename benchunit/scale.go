// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Power scales axis values down by a power of ten. Powers of 0 and
// 1 leave values unchanged.
type Power int

// Active reports whether p changes values.
func (p Power) Active() bool {
	return p > 1
}

// Apply returns x scaled by p.
func (p Power) Apply(x float64) float64 {
	if !p.Active() {
		return x
	}
	return x / math.Pow(10, float64(p))
}

// Label returns label annotated with the scale of p, such as
// "Size (×10^6)".
func (p Power) Label(label string) string {
	if !p.Active() {
		return label
	}
	return fmt.Sprintf("%s (×10^%d)", label, int(p))
}

// A Scaler formats numbers with an SI prefix.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", etc)
}

// Format formats val and appends the unit prefix according to s.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

var siPrefixes = []struct {
	exp    int
	prefix string
}{
	{12, "T"}, {9, "G"}, {6, "M"}, {3, "k"}, {0, ""}, {-3, "m"}, {-6, "µ"}, {-9, "n"},
}

// Scale returns a Scaler that formats val with three significant
// figures and the largest SI prefix that keeps at least one digit
// before the decimal point.
func Scale(val float64) Scaler {
	val = math.Abs(val)
	if val == 0 || math.IsInf(val, 0) || math.IsNaN(val) {
		return Scaler{0, 1, ""}
	}
	for _, p := range siPrefixes {
		f := math.Pow(10, float64(p.exp))
		// Round to three significant figures before choosing, so
		// 999.9 scales as 1.00k rather than 1000.
		if v := val / f; roundSig(v, 3) >= 1 {
			return Scaler{precFor(roundSig(v, 3)), f, p.prefix}
		}
	}
	last := siPrefixes[len(siPrefixes)-1]
	return Scaler{2, math.Pow(10, float64(last.exp)), last.prefix}
}

func precFor(v float64) int {
	switch {
	case v >= 100:
		return 0
	case v >= 10:
		return 1
	}
	return 2
}

func roundSig(v float64, sig int) float64 {
	if v == 0 {
		return 0
	}
	mag := math.Pow(10, float64(sig-1)-math.Floor(math.Log10(v)))
	return math.Round(v*mag) / mag
}
