// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// A SyntaxError reports malformed benchmark JSON. Entry is the index
// of the offending element of "benchmarks", or -1 if the error is not
// specific to one entry.
type SyntaxError struct {
	FileName string
	Entry    int
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("%s: benchmarks[%d]: %s", e.FileName, e.Entry, e.Msg)
}

// rawBatch defers entry decoding so errors can name the entry.
type rawBatch struct {
	Context    Context           `json:"context"`
	Benchmarks []json.RawMessage `json:"benchmarks"`
}

// Read decodes a single Batch from r. fileName is used in error
// messages; it is purely diagnostic.
func Read(r io.Reader, fileName string) (*Batch, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, fileName)
}

// Decode decodes a single Batch from data.
func Decode(data []byte, fileName string) (*Batch, error) {
	var raw rawBatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SyntaxError{fileName, -1, err.Error()}
	}
	if raw.Benchmarks == nil {
		return nil, &SyntaxError{fileName, -1, `missing "benchmarks" array`}
	}
	b := &Batch{Context: raw.Context, Benchmarks: make([]Entry, len(raw.Benchmarks))}
	for i, msg := range raw.Benchmarks {
		if err := json.Unmarshal(msg, &b.Benchmarks[i]); err != nil {
			return nil, &SyntaxError{fileName, i, err.Error()}
		}
		if b.Benchmarks[i].Name == "" {
			return nil, &SyntaxError{fileName, i, `missing "name"`}
		}
	}
	return b, nil
}
