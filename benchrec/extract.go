// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"fmt"

	"golang.org/x/benchplot/gbench"
)

// A FormatError reports a benchmark name that does not match the
// extraction grammar. It means the producer and consumer disagree
// on the name encoding, so extraction of the whole batch stops.
type FormatError struct {
	Index   int    // index of the entry in the batch
	Name    string // the raw benchmark name
	Grammar string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("benchmarks[%d]: cannot parse benchmark name %q with %s grammar", e.Index, e.Name, e.Grammar)
}

// An Extractor turns benchmark entries into Records.
//
// The zero Extractor uses the Strict grammar.
type Extractor struct {
	Grammar *Grammar
}

func (x *Extractor) grammar() *Grammar {
	if x.Grammar == nil {
		return Strict
	}
	return x.Grammar
}

// Extract returns one Record per non-aggregate entry of b, in batch
// order. Aggregate entries are skipped. If any other entry's name
// does not match the grammar, Extract returns a *FormatError and no
// records.
func (x *Extractor) Extract(b *gbench.Batch) ([]*Record, error) {
	recs := make([]*Record, 0, len(b.Benchmarks))
	for i := range b.Benchmarks {
		e := &b.Benchmarks[i]
		if e.IsAggregate() {
			continue
		}
		r, err := x.ExtractEntry(e)
		if err != nil {
			err.(*FormatError).Index = i
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// ExtractEntry converts a single entry. It does not check whether e
// is an aggregate. On failure it returns a *FormatError whose Index
// is 0.
func (x *Extractor) ExtractEntry(e *gbench.Entry) (*Record, error) {
	g := x.grammar()
	n, ok := g.Parse(e.Name)
	if !ok {
		return nil, &FormatError{Name: e.Name, Grammar: g.String()}
	}
	return &Record{
		Group:            n.Group,
		Experiment:       n.Experiment,
		Algorithm:        n.Algorithm,
		Options:          n.Options,
		HasOptions:       n.HasOptions,
		BaseSize:         n.BaseSize,
		ExperimentSize:   n.ExperimentSize,
		CPUTime:          e.CPUTime.Float(),
		RealTime:         e.RealTime.Float(),
		Iterations:       e.Iterations.Float(),
		TimeUnit:         e.TimeUnit,
		FullAlgorithmKey: fullKey(n.Algorithm, n.Options),
	}, nil
}
