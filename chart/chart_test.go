// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"golang.org/x/benchplot/benchrec"
)

func rec(alg string, base, cpu float64) *benchrec.Record {
	return &benchrec.Record{
		Group:            "sort",
		Experiment:       "random",
		Algorithm:        alg,
		BaseSize:         base,
		ExperimentSize:   base,
		CPUTime:          cpu,
		RealTime:         cpu,
		Iterations:       1,
		TimeUnit:         "ns",
		FullAlgorithmKey: alg + " []",
	}
}

func testRecords() []*benchrec.Record {
	return []*benchrec.Record{
		rec("quick", 2000, 10),
		rec("merge", 1000, 7),
		rec("quick", 1000, 4),
		rec("quick", 1000, 6),
		rec("merge", 2000, 20),
		rec("quick", 2000, 14),
	}
}

func testConfig() *Config {
	return &Config{
		Filters:  []byte(`{"field": "group", "match": "sort"}`),
		XAxis:    "base_size",
		XPower:   3,
		XLabel:   "Size",
		YAxis:    "cpu_time",
		YLabel:   "Time (ns)",
		Hue:      "full_algo",
		Filename: "sort.png",
	}
}

func TestAggregate(t *testing.T) {
	series, err := Aggregate(testRecords(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	// Lo and Hi are checked separately.
	for i := range series {
		series[i].Lo, series[i].Hi = nil, nil
	}
	want := []Series{
		{Label: "quick []", X: []float64{1, 2}, Mean: []float64{5, 12}},
		{Label: "merge []", X: []float64{1, 2}, Mean: []float64{7, 20}},
	}
	if diff := cmp.Diff(want, series, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateCI(t *testing.T) {
	series, err := Aggregate(testRecords(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	quick, merge := series[0], series[1]
	// Single samples have a degenerate interval.
	for i := range merge.X {
		if merge.Lo[i] != merge.Mean[i] || merge.Hi[i] != merge.Mean[i] {
			t.Errorf("merge point %d: interval [%v, %v], want mean %v", i, merge.Lo[i], merge.Hi[i], merge.Mean[i])
		}
	}
	// {4, 6}: sd = √2, so the half-width is t(0.975, 1).
	const half = 12.7062047
	if got := quick.Hi[0] - quick.Mean[0]; math.Abs(got-half) > 1e-4 {
		t.Errorf("quick half-width: got %v, want %v", got, half)
	}
	if d := (quick.Mean[0] - quick.Lo[0]) - (quick.Hi[0] - quick.Mean[0]); math.Abs(d) > 1e-9 {
		t.Errorf("quick interval not symmetric: [%v, %v]", quick.Lo[0], quick.Hi[0])
	}
}

func TestMeanCI(t *testing.T) {
	lo, hi := meanCI([]float64{3})
	if lo != 3 || hi != 3 {
		t.Errorf("one sample: got [%v, %v]", lo, hi)
	}
	lo, hi = meanCI([]float64{5, 5, 5, 5})
	if lo != 5 || hi != 5 {
		t.Errorf("constant samples: got [%v, %v]", lo, hi)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Filename = filepath.Join("sub", "sort.png")
	if err := Render(testRecords(), cfg, dir); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(filepath.Join(dir, "sub", "sort.png"))
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Errorf("empty image")
	}
}

func TestRenderNoData(t *testing.T) {
	cfg := testConfig()
	cfg.Filters = []byte(`{"field": "group", "match": "hash"}`)
	err := Render(testRecords(), cfg, t.TempDir())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("got %v, want ErrNoData", err)
	}
}

func TestRenderBadQuery(t *testing.T) {
	cfg := testConfig()
	cfg.Filters = []byte(`{"field": "colour", "match": "red"}`)
	if err := Render(testRecords(), cfg, t.TempDir()); err == nil {
		t.Errorf("want error for unknown field")
	}
}

func TestSeriesColors(t *testing.T) {
	for _, n := range []int{1, 2, 8, 9, 20} {
		if got := len(seriesColors(n)); got != n {
			t.Errorf("seriesColors(%d): got %d colors", n, got)
		}
	}
}

func TestSITicks(t *testing.T) {
	for _, tick := range (siTicks{}).Ticks(0, 4e6) {
		if tick.Label == "" {
			continue
		}
		if tick.Value != 0 && tick.Label[len(tick.Label)-1] != 'M' {
			t.Errorf("tick %v: label %q lacks M prefix", tick.Value, tick.Label)
		}
	}
}
