// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// benchplot renders charts of Google Benchmark results.
//
// Usage:
//
//	benchplot [flags] data.json config.json outdir
//
// benchplot reads the benchmark batch in data.json, extracts one
// record per non-aggregate benchmark from its encoded name, and for
// each chart described by config.json selects the records matching
// the chart's filters and plots them to outdir.
//
// Benchmark names must have the form
//
//	group :: experiment :: algorithm[options]/base_size/experiment_size/N/manual_time
//
// where [options] is optional. With -grammar=lenient, anything (or
// nothing) may follow experiment_size.
//
// config.json holds a chart object or an array of them:
//
//	{
//		"filters": [{"field": "group", "match": "sort"}],
//		"x_axis": "base_size", "x_power": 6, "x_label": "Size",
//		"y_axis": "cpu_time", "y_power": 6, "y_label": "Time (ns)",
//		"hue": "full_algorithm_key",
//		"filename": "sort.png"
//	}
//
// Only "filters" and "filename" are required. The filter language is
// documented in package golang.org/x/benchplot/benchquery.
package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"golang.org/x/benchplot/benchquery"
	"golang.org/x/benchplot/benchrec"
	"golang.org/x/benchplot/benchunit"
	"golang.org/x/benchplot/chart"
	"golang.org/x/benchplot/gbench"
	"golang.org/x/benchplot/store"
	_ "golang.org/x/benchplot/store/sqlite3"
)

var (
	flagGrammar      = flag.String("grammar", "strict", "benchmark name `grammar`: strict or lenient")
	flagCorrectedMax = flag.Bool("corrected-max", false, "compare \"max\" filters against \"max\" instead of \"min\"")
	flagDB           = flag.String("db", "sqlite3", "working set database `driver`: sqlite3 or mysql")
	flagDSN          = flag.String("dsn", ":memory:", "working set database data source `name`")
	flagVerbose      = flag.Bool("v", false, "log debug output")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: benchplot [flags] data.json config.json outdir

benchplot extracts records from the Google Benchmark results in
data.json and renders one chart per entry of config.json into outdir.
If data.json is "-", it is read from stdin.

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 3 {
		usage()
		os.Exit(2)
	}
	setupLogging(*flagVerbose)

	grammar, ok := benchrec.LookupGrammar(*flagGrammar)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown grammar %q\n", *flagGrammar)
		os.Exit(2)
	}
	var opts []benchquery.Option
	if *flagCorrectedMax {
		opts = append(opts, benchquery.WithCorrectedMax())
	}

	dataPath, configPath, outDir := flag.Arg(0), flag.Arg(1), flag.Arg(2)
	if err := run(context.Background(), dataPath, configPath, outDir, grammar, opts); err != nil {
		log.Fatal().Err(err).Msg("benchplot failed")
	}
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func run(ctx context.Context, dataPath, configPath, outDir string, grammar *benchrec.Grammar, opts []benchquery.Option) error {
	// Load the chart configurations first so a bad config fails
	// before any work is done.
	cfgs, err := chart.LoadConfigs(configPath)
	if err != nil {
		return err
	}

	db, err := store.OpenSQL(*flagDB, *flagDSN)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", *flagDB, err)
	}
	defer db.Close()

	if err := load(ctx, db, dataPath, grammar); err != nil {
		return err
	}

	for _, cfg := range cfgs {
		p, err := benchquery.CompileJSON(cfg.Filters, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.Filename, err)
		}
		log.Debug().Str("chart", cfg.Filename).Stringer("filters", p).Msg("compiled filters")
		recs, err := db.Search(ctx, p)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.Filename, err)
		}
		if len(recs) == 0 {
			log.Warn().Str("chart", cfg.Filename).Msg("no records match filters, skipping")
			continue
		}
		if err := chart.Write(recs, cfg, outDir); err != nil {
			return err
		}
		log.Info().Str("chart", cfg.Filename).Int("records", len(recs)).Msg("wrote chart")
	}
	return nil
}

// load extracts the records of the batch at path into db.
func load(ctx context.Context, db *store.DB, path string, grammar *benchrec.Grammar) error {
	files := gbench.Files{Paths: []string{path}, AllowStdin: true}
	x := benchrec.Extractor{Grammar: grammar}
	for files.Scan() {
		recs, err := x.Extract(files.Batch())
		if err != nil {
			return fmt.Errorf("%s: %w", files.Label(), err)
		}
		if err := benchunit.CheckUnits(benchrec.TimeUnits(recs)); err != nil {
			log.Warn().Str("input", files.Label()).Err(err).Msg("suspicious time units")
		}
		batch, err := db.NewBatch(ctx, files.Label())
		if err != nil {
			return err
		}
		if err := batch.Insert(ctx, recs); err != nil {
			return err
		}
		log.Debug().Str("input", files.Label()).Int("records", len(recs)).Msg("extracted records")
	}
	return files.Err()
}
