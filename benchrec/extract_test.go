// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/benchplot/gbench"
)

func entry(name, runType string) gbench.Entry {
	return gbench.Entry{
		Name:       name,
		RunType:    runType,
		Iterations: 5,
		RealTime:   120,
		CPUTime:    110,
		TimeUnit:   "ns",
	}
}

func TestExtractScenario(t *testing.T) {
	b := &gbench.Batch{Benchmarks: []gbench.Entry{
		entry("suiteA :: sortBench :: quicksort[median3]/1024/1/5/manual_time", gbench.RunIteration),
	}}
	var x Extractor
	recs, err := x.Extract(b)
	if err != nil {
		t.Fatal(err)
	}
	want := []*Record{{
		Group:            "suiteA",
		Experiment:       "sortBench",
		Algorithm:        "quicksort",
		Options:          "median3",
		HasOptions:       true,
		BaseSize:         1024,
		ExperimentSize:   1,
		CPUTime:          110,
		RealTime:         120,
		Iterations:       5,
		TimeUnit:         "ns",
		FullAlgorithmKey: "quicksort [median3]",
	}}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestExtractSkipsAggregates(t *testing.T) {
	b := &gbench.Batch{Benchmarks: []gbench.Entry{
		entry("g :: e :: a/1/2/3/manual_time", gbench.RunIteration),
		entry("g :: e :: a/1/2/3/manual_time_mean", gbench.RunAggregate),
		entry("g :: e :: b/1/2/3/manual_time", gbench.RunIteration),
	}}
	var x Extractor
	recs, err := x.Extract(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Algorithm != "a" || recs[1].Algorithm != "b" {
		t.Errorf("got algorithms %s, %s; want a, b", recs[0].Algorithm, recs[1].Algorithm)
	}

	// Aggregates are skipped even when their names are malformed.
	b.Benchmarks[1].Name = "not a benchmark name"
	if _, err := x.Extract(b); err != nil {
		t.Errorf("malformed aggregate name: %v", err)
	}

	// Batches of only aggregates produce nothing.
	for n := 0; n < 5; n++ {
		var only gbench.Batch
		for i := 0; i < n; i++ {
			only.Benchmarks = append(only.Benchmarks, entry("x", gbench.RunAggregate))
		}
		recs, err := x.Extract(&only)
		if err != nil || len(recs) != 0 {
			t.Errorf("%d aggregates: got %d records, %v", n, len(recs), err)
		}
	}
}

func TestExtractFormatError(t *testing.T) {
	const bad = "suiteA :: sortBench :: quicksort/1024"
	b := &gbench.Batch{Benchmarks: []gbench.Entry{
		entry("g :: e :: a/1/2/3/manual_time", gbench.RunIteration),
		entry(bad, gbench.RunIteration),
		entry("g :: e :: c/1/2/3/manual_time", gbench.RunIteration),
	}}
	var x Extractor
	recs, err := x.Extract(b)
	if recs != nil {
		t.Errorf("got %d records, want none", len(recs))
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FormatError", err)
	}
	if fe.Index != 1 || fe.Name != bad || fe.Grammar != "strict" {
		t.Errorf("got %+v", fe)
	}
}

func TestGrammars(t *testing.T) {
	type res struct {
		strict, lenient bool
	}
	for _, test := range []struct {
		name string
		want res
	}{
		{"g :: e :: a/1/2/3/manual_time", res{true, true}},
		{"g :: e :: a[o]/1/2/10/manual_time", res{true, true}},
		{"g :: e :: a/1/2", res{false, true}},
		{"g :: e :: a/1/2/3", res{false, true}},
		{"g :: e :: a/1/2/3/real_time", res{false, true}},
		{"g :: e :: a/1/2x", res{false, false}},
		{"g :: e :: a/1", res{false, false}},
		{"g :: e :: a/-1/2/3/manual_time", res{false, false}},
		{"g :: e :: a/1.5/2/3/manual_time", res{false, false}},
		{"g e :: a/1/2/3/manual_time", res{false, false}},
		{"g :: e :: a b/1/2/3/manual_time", res{false, false}},
		{"g :: e :: a[o]]/1/2/3/manual_time", res{false, false}},
		{"g :: e :: [o]/1/2/3/manual_time", res{false, false}},
		{"", res{false, false}},
	} {
		_, s := Strict.Parse(test.name)
		_, l := Lenient.Parse(test.name)
		if got := (res{s, l}); got != test.want {
			t.Errorf("%q: got strict=%v lenient=%v, want %+v", test.name, s, l, test.want)
		}
	}
}

func TestCustomGrammar(t *testing.T) {
	g, err := NewGrammar("real", `/real_time$`)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := g.Parse("g :: e :: a[]/7/8/real_time")
	if !ok {
		t.Fatal("no match")
	}
	want := Name{Group: "g", Experiment: "e", Algorithm: "a", Options: "", HasOptions: true, BaseSize: 7, ExperimentSize: 8}
	if n != want {
		t.Errorf("got %+v, want %+v", n, want)
	}
	if _, err := NewGrammar("bad", `(`); err == nil {
		t.Error("want error for bad trailer")
	}
	if g, ok := LookupGrammar("lenient"); !ok || g != Lenient {
		t.Error("LookupGrammar(lenient) failed")
	}
	if _, ok := LookupGrammar("loose"); ok {
		t.Error("LookupGrammar(loose) succeeded")
	}
}

// TestRoundTrip checks that encoded names decode to the values that
// were encoded.
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const alpha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJ0123456789_-.:<>,"
	word := func(n int, extra string) string {
		chars := alpha + extra
		b := make([]byte, 1+rng.Intn(n))
		for i := range b {
			b[i] = chars[rng.Intn(len(chars))]
		}
		return string(b)
	}
	for i := 0; i < 500; i++ {
		want := Name{
			Group:          word(10, "[]/"),
			Experiment:     word(10, "[]/"),
			Algorithm:      word(10, "]"),
			BaseSize:       float64(rng.Intn(1 << 30)),
			ExperimentSize: float64(rng.Intn(1000)),
		}
		opts := ""
		if rng.Intn(2) == 0 {
			want.HasOptions = true
			if rng.Intn(4) != 0 {
				want.Options = word(8, "[/ ")
			}
			opts = "[" + want.Options + "]"
		}
		name := fmt.Sprintf("%s :: %s :: %s%s/%d/%d/%d/manual_time",
			want.Group, want.Experiment, want.Algorithm, opts,
			int64(want.BaseSize), int64(want.ExperimentSize), rng.Intn(20))
		for _, g := range []*Grammar{Strict, Lenient} {
			got, ok := g.Parse(name)
			if !ok {
				t.Fatalf("%s: %q did not parse", g, name)
			}
			if got != want {
				t.Fatalf("%s: %q: got %+v, want %+v", g, name, got, want)
			}
		}
	}
}
