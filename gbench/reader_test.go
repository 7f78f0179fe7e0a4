// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadFile(t *testing.T) {
	f, err := os.Open("testdata/sort.json")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	b, err := Read(f, "sort.json")
	if err != nil {
		t.Fatal(err)
	}
	if b.Context.HostName != "bench01" || b.Context.NumCPUs != 8 {
		t.Errorf("context: got %+v", b.Context)
	}
	if len(b.Benchmarks) != 3 {
		t.Fatalf("got %d entries, want 3", len(b.Benchmarks))
	}

	want := Entry{
		Name:            "suiteA :: sortBench :: mergesort/1024/1/5/manual_time",
		RunName:         "suiteA :: sortBench :: mergesort/1024/1/5/manual_time",
		RunType:         RunIteration,
		Repetitions:     1,
		RepetitionIndex: 0,
		Threads:         1,
		Iterations:      5,
		RealTime:        130000,
		CPUTime:         125000.5,
		TimeUnit:        "ns",
	}
	if diff := cmp.Diff(want, b.Benchmarks[1]); diff != "" {
		t.Errorf("entry 1 (-want +got):\n%s", diff)
	}

	var aggs int
	for i := range b.Benchmarks {
		if b.Benchmarks[i].IsAggregate() {
			aggs++
		}
	}
	if aggs != 1 {
		t.Errorf("got %d aggregate entries, want 1", aggs)
	}
}

func TestNumber(t *testing.T) {
	for _, test := range []struct {
		in   string
		want float64
		err  bool
	}{
		{`5`, 5, false},
		{`1.5e3`, 1500, false},
		{`"42"`, 42, false},
		{`" 0.25 "`, 0.25, false},
		{`null`, 0, false},
		{`"fast"`, 0, true},
		{`true`, 0, true},
	} {
		var n Number
		err := n.UnmarshalJSON([]byte(test.in))
		if test.err {
			if err == nil {
				t.Errorf("%s: want error, got %v", test.in, n)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.in, err)
		} else if n.Float() != test.want {
			t.Errorf("%s: got %v, want %v", test.in, n.Float(), test.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		data  string
		entry int
		msg   string
	}{
		{"notJSON", `{"benchmarks": [`, -1, ""},
		{"noBenchmarks", `{"context": {}}`, -1, `missing "benchmarks" array`},
		{"badNumber", `{"benchmarks": [{"name": "a", "cpu_time": 1}, {"name": "b", "cpu_time": "x"}]}`, 1, ""},
		{"noName", `{"benchmarks": [{"cpu_time": 1}]}`, 0, `missing "name"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode([]byte(test.data), "in.json")
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("got %v, want *SyntaxError", err)
			}
			if se.Entry != test.entry {
				t.Errorf("got entry %d, want %d", se.Entry, test.entry)
			}
			if test.msg != "" && se.Msg != test.msg {
				t.Errorf("got message %q, want %q", se.Msg, test.msg)
			}
			if !strings.HasPrefix(se.Error(), "in.json: ") {
				t.Errorf("error %q does not name the file", se.Error())
			}
		})
	}
}
