// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// benchquery reads Google Benchmark results from input files,
// extracts records from the benchmark names, and prints the records
// selected by a query. If no inputs are provided, it reads from
// stdin.
//
// The query is a JSON document in the language described in package
// golang.org/x/benchplot/benchquery, for example
//
//	benchquery '[{"field":"group","match":"sort"},{"field":"base_size","min":1000}]' results.json
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"golang.org/x/benchplot/benchquery"
	"golang.org/x/benchplot/benchrec"
	"golang.org/x/benchplot/gbench"
	"golang.org/x/benchplot/internal/texttab"
)

var (
	flagQueryFile    = flag.String("q", "", "read the query from `file` instead of the first argument")
	flagGrammar      = flag.String("grammar", "strict", "benchmark name `grammar`: strict or lenient")
	flagCorrectedMax = flag.Bool("corrected-max", false, "compare \"max\" filters against \"max\" instead of \"min\"")
	flagFormat       = flag.String("format", "text", "output `format`: text, csv or json")
	flagVerbose      = flag.Bool("v", false, "log debug output")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: benchquery [flags] query [inputs...]
       benchquery [flags] -q query.json [inputs...]

benchquery reads Google Benchmark results from input files, extracts
records from the benchmark names, and prints the records selected by
query. If no inputs are provided, it reads from stdin. Inputs may be
given as label=path.

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	args := flag.Args()
	var query []byte
	if *flagQueryFile != "" {
		data, err := os.ReadFile(*flagQueryFile)
		if err != nil {
			log.Fatal().Err(err).Msg("reading query")
		}
		query = data
	} else {
		if len(args) < 1 {
			usage()
			os.Exit(2)
		}
		query, args = []byte(args[0]), args[1:]
	}

	grammar, ok := benchrec.LookupGrammar(*flagGrammar)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown grammar %q\n", *flagGrammar)
		os.Exit(2)
	}
	write, ok := writers[*flagFormat]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *flagFormat)
		os.Exit(2)
	}
	var opts []benchquery.Option
	if *flagCorrectedMax {
		opts = append(opts, benchquery.WithCorrectedMax())
	}

	pred, err := benchquery.CompileJSON(query, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("bad query")
	}
	log.Debug().Stringer("query", pred).Msg("compiled query")

	recs, err := selectFiles(&gbench.Files{Paths: args, AllowStdin: true, AllowLabels: true}, &benchrec.Extractor{Grammar: grammar}, pred)
	if err != nil {
		log.Fatal().Err(err).Msg("benchquery failed")
	}
	if err := write(os.Stdout, recs); err != nil {
		log.Fatal().Err(err).Msg("writing output")
	}
}

// selectFiles extracts the records of every batch in files and
// returns those matched by pred, in input order.
func selectFiles(files *gbench.Files, x *benchrec.Extractor, pred *benchquery.Predicate) ([]*benchrec.Record, error) {
	var out []*benchrec.Record
	for files.Scan() {
		recs, err := x.Extract(files.Batch())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", files.Label(), err)
		}
		sel, err := pred.Select(recs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", files.Label(), err)
		}
		log.Debug().Str("input", files.Label()).Int("records", len(recs)).Int("selected", len(sel)).Msg("filtered")
		out = append(out, sel...)
	}
	return out, files.Err()
}

var writers = map[string]func(io.Writer, []*benchrec.Record) error{
	"text": writeText,
	"csv":  writeCSV,
	"json": writeJSON,
}

// row returns the string form of every field of r, in field order.
func row(r *benchrec.Record) []string {
	names := benchrec.Fields()
	vals := make([]string, len(names))
	for i, name := range names {
		f, _ := benchrec.LookupField(name)
		vals[i] = f.Get(r).String()
	}
	return vals
}

func writeText(w io.Writer, recs []*benchrec.Record) error {
	var tab texttab.Table
	names := benchrec.Fields()
	tab.Row()
	for _, name := range names {
		tab.Cell(name)
	}
	for _, r := range recs {
		tab.Row()
		for i, v := range row(r) {
			f, _ := benchrec.LookupField(names[i])
			if f.Kind == benchrec.Number {
				tab.Cell(v, texttab.Right)
			} else {
				tab.Cell(v)
			}
		}
	}
	return tab.Format(w)
}

func writeCSV(w io.Writer, recs []*benchrec.Record) error {
	cw := csv.NewWriter(w)
	cw.Write(benchrec.Fields())
	for _, r := range recs {
		cw.Write(row(r))
	}
	cw.Flush()
	return cw.Error()
}

// jsonRecord is the JSON form of a Record. Absent options are null.
type jsonRecord struct {
	Group            string  `json:"group"`
	Experiment       string  `json:"experiment"`
	Algorithm        string  `json:"algorithm"`
	AlgorithmOptions *string `json:"algorithm_options"`
	BaseSize         float64 `json:"base_size"`
	ExperimentSize   float64 `json:"experiment_size"`
	CPUTime          float64 `json:"cpu_time"`
	RealTime         float64 `json:"real_time"`
	Iterations       float64 `json:"iterations"`
	TimeUnit         string  `json:"time_unit"`
	FullAlgorithmKey string  `json:"full_algorithm_key"`
}

func writeJSON(w io.Writer, recs []*benchrec.Record) error {
	out := make([]jsonRecord, len(recs))
	for i, r := range recs {
		out[i] = jsonRecord{
			Group:            r.Group,
			Experiment:       r.Experiment,
			Algorithm:        r.Algorithm,
			BaseSize:         r.BaseSize,
			ExperimentSize:   r.ExperimentSize,
			CPUTime:          r.CPUTime,
			RealTime:         r.RealTime,
			Iterations:       r.Iterations,
			TimeUnit:         r.TimeUnit,
			FullAlgorithmKey: r.FullAlgorithmKey,
		}
		if r.HasOptions {
			opts := r.Options
			out[i].AlgorithmOptions = &opts
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
