// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"fmt"
	"os"
	"strings"
)

// A Files reads benchmark batches from a sequence of input files.
//
// Each batch is labeled with the path it was read from. Duplicate
// paths are disambiguated by appending "#N". If AllowLabels is true,
// entries in Paths may be of the form label=path, and the label part
// is used verbatim.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	AllowStdin bool

	// AllowLabels indicates that custom labels are allowed in
	// Paths.
	AllowLabels bool

	// inputs is nil until the first Scan.
	inputs []input

	batch *Batch
	label string
	err   error
}

type input struct {
	path      string
	label     string
	isStdin   bool
	isLabeled bool
}

func (f *Files) init() {
	f.inputs = []input{}

	pathCount := make(map[string]int)
	if f.AllowStdin && len(f.Paths) == 0 {
		f.inputs = append(f.inputs, input{"-", "-", true, false})
	}
	for _, path := range f.Paths {
		label := path
		isLabeled := false
		if i := strings.Index(path, "="); f.AllowLabels && i >= 0 {
			label, path = path[:i], path[i+1:]
			isLabeled = true
		} else {
			pathCount[path]++
		}
		isStdin := f.AllowStdin && path == "-"
		f.inputs = append(f.inputs, input{path, label, isStdin, isLabeled})
	}

	pathI := make(map[string]int)
	for i := range f.inputs {
		inp := &f.inputs[i]
		if inp.isLabeled || pathCount[inp.path] <= 1 {
			continue
		}
		inp.label = fmt.Sprintf("%s#%d", inp.path, pathI[inp.path])
		pathI[inp.path]++
	}
}

// Scan reads the next file and reports whether a batch was read.
// If Scan reaches the end of the file list, or if an error occurs,
// it returns false and the caller should check Err.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.init()
	}
	if len(f.inputs) == 0 {
		f.batch = nil
		return false
	}
	inp := f.inputs[0]
	f.inputs = f.inputs[1:]

	var batch *Batch
	if inp.isStdin {
		batch, f.err = Read(os.Stdin, "<stdin>")
	} else {
		file, err := os.Open(inp.path)
		if err != nil {
			f.err = err
			return false
		}
		batch, f.err = Read(file, inp.path)
		file.Close()
	}
	if f.err != nil {
		f.batch = nil
		return false
	}
	f.batch, f.label = batch, inp.label
	return true
}

// Batch returns the batch read by the last call to Scan.
func (f *Files) Batch() *Batch {
	return f.batch
}

// Label returns the label of the batch read by the last call to Scan.
func (f *Files) Label() string {
	return f.label
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}
