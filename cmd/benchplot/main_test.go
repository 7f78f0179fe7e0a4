// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/net/context"

	"golang.org/x/benchplot/benchquery"
	"golang.org/x/benchplot/benchrec"
)

const testData = `{
  "context": {"date": "2026-01-02T15:04:05+00:00", "num_cpus": 8},
  "benchmarks": [
    {"name": "sort :: random :: quick[median3]/1000000/1/5/manual_time", "run_type": "iteration",
     "iterations": 10, "real_time": 1500000, "cpu_time": 1400000, "time_unit": "ns"},
    {"name": "sort :: random :: quick[median3]/2000000/1/5/manual_time", "run_type": "iteration",
     "iterations": 10, "real_time": 3100000, "cpu_time": 3000000, "time_unit": "ns"},
    {"name": "sort :: random :: merge/1000000/1/5/manual_time", "run_type": "iteration",
     "iterations": "10", "real_time": "1700000", "cpu_time": "1600000", "time_unit": "ns"},
    {"name": "sort :: random :: merge/2000000/1/5/manual_time", "run_type": "iteration",
     "iterations": 10, "real_time": 3500000, "cpu_time": 3400000, "time_unit": "ns"},
    {"name": "sort :: random :: merge/2000000/1/5/manual_time_mean", "run_type": "aggregate",
     "aggregate_name": "mean", "iterations": 5, "real_time": 3500000, "cpu_time": 3400000, "time_unit": "ns"},
    {"name": "hash :: random :: open/1000000/1/5/manual_time", "run_type": "iteration",
     "iterations": 10, "real_time": 900000, "cpu_time": 800000, "time_unit": "ns"}
  ]
}`

const testConfig = `[
  {"filters": [{"field": "group", "match": "sort"}], "filename": "sort.png"},
  {"filters": {"kind": "set", "field": "algorithm", "set": ["open"]}, "filename": "hash/open.svg",
   "x_power": 0, "y_power": 0, "hue": "algorithm"},
  {"filters": {"field": "group", "match": "tree"}, "filename": "tree.png"}
]`

func writeInputs(t *testing.T, data, config string) (dataPath, configPath string) {
	t.Helper()
	dir := t.TempDir()
	dataPath = filepath.Join(dir, "data.json")
	configPath = filepath.Join(dir, "config.json")
	if err := os.WriteFile(dataPath, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte(config), 0666); err != nil {
		t.Fatal(err)
	}
	return
}

func TestRun(t *testing.T) {
	dataPath, configPath := writeInputs(t, testData, testConfig)
	out := t.TempDir()
	if err := run(context.Background(), dataPath, configPath, out, benchrec.Strict, nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"sort.png", filepath.Join("hash", "open.svg")} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing chart: %v", err)
		}
	}
	// The tree chart selects nothing and is skipped.
	if _, err := os.Stat(filepath.Join(out, "tree.png")); !os.IsNotExist(err) {
		t.Errorf("tree.png: got %v, want not exist", err)
	}
}

func TestRunFormatError(t *testing.T) {
	data := `{"benchmarks": [{"name": "sort/1000", "run_type": "iteration", "cpu_time": 1, "real_time": 1, "iterations": 1, "time_unit": "ns"}]}`
	dataPath, configPath := writeInputs(t, data, testConfig)
	err := run(context.Background(), dataPath, configPath, t.TempDir(), benchrec.Strict, nil)
	var fe *benchrec.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *benchrec.FormatError", err)
	}
	if fe.Name != "sort/1000" {
		t.Errorf("FormatError.Name: got %q", fe.Name)
	}
}

func TestRunMax(t *testing.T) {
	config := `{"filters": {"field": "base_size", "max": 1500000}, "filename": "small.png"}`
	dataPath, configPath := writeInputs(t, testData, config)

	err := run(context.Background(), dataPath, configPath, t.TempDir(), benchrec.Strict, nil)
	var qe *benchquery.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("got %v, want *benchquery.QueryError", err)
	}

	out := t.TempDir()
	opts := []benchquery.Option{benchquery.WithCorrectedMax()}
	if err := run(context.Background(), dataPath, configPath, out, benchrec.Strict, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(out, "small.png")); err != nil {
		t.Error(err)
	}
}
