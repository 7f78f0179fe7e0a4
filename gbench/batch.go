// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gbench reads the JSON output of Google Benchmark
// (--benchmark_format=json or --benchmark_out).
//
// A file holds one Batch: an optional context describing the host
// and a sequence of benchmark entries. Entries are kept in file order.
package gbench

import (
	"bytes"
	"fmt"
	"strconv"
)

// Run types reported in the "run_type" field of an Entry.
const (
	RunIteration = "iteration"
	RunAggregate = "aggregate"
)

// A Batch is the decoded contents of one benchmark output file.
type Batch struct {
	Context    Context `json:"context"`
	Benchmarks []Entry `json:"benchmarks"`
}

// Context describes the machine and build that produced a Batch.
// It is informational only.
type Context struct {
	Date             string `json:"date"`
	HostName         string `json:"host_name"`
	Executable       string `json:"executable"`
	NumCPUs          int    `json:"num_cpus"`
	MHzPerCPU        int    `json:"mhz_per_cpu"`
	CPUScalingEnable bool   `json:"cpu_scaling_enabled"`
	LibraryBuildType string `json:"library_build_type"`
}

// An Entry is one element of the "benchmarks" array.
type Entry struct {
	Name            string `json:"name"`
	RunName         string `json:"run_name"`
	RunType         string `json:"run_type"`
	AggregateName   string `json:"aggregate_name"`
	Repetitions     Number `json:"repetitions"`
	RepetitionIndex Number `json:"repetition_index"`
	Threads         Number `json:"threads"`
	Iterations      Number `json:"iterations"`
	RealTime        Number `json:"real_time"`
	CPUTime         Number `json:"cpu_time"`
	TimeUnit        string `json:"time_unit"`
}

// IsAggregate reports whether e is a statistical summary (mean,
// median, stddev, ...) over repetitions rather than a single trial.
func (e *Entry) IsAggregate() bool {
	return e.RunType == RunAggregate
}

// A Number is a numeric payload field. Google Benchmark writes
// numbers, but hand-edited and converted files sometimes carry them
// as strings, so both forms are accepted.
type Number float64

// UnmarshalJSON accepts a JSON number or a JSON string containing a
// number.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("bad numeric string %s", data)
		}
		data = bytes.TrimSpace([]byte(s))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", data)
	}
	*n = Number(f)
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	return float64(n)
}
