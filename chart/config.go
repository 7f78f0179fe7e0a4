// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"golang.org/x/benchplot/benchrec"
	"golang.org/x/benchplot/benchunit"
)

// Defaults for optional Config fields.
const (
	DefaultXAxis  = "base_size"
	DefaultXPower = 6
	DefaultXLabel = "Size"
	DefaultYAxis  = "cpu_time"
	DefaultYPower = 6
	DefaultYLabel = "Time (ns)"
	DefaultHue    = "full_algorithm_key"
)

// A Config describes one chart: which records to plot and how.
type Config struct {
	// Filters is the query selecting the records to plot, in the
	// JSON form read by benchquery.ParseSpec.
	Filters json.RawMessage `json:"filters"`

	XAxis  string          `json:"x_axis"`
	XPower benchunit.Power `json:"x_power"`
	XLabel string          `json:"x_label"`

	YAxis  string          `json:"y_axis"`
	YPower benchunit.Power `json:"y_power"`
	YLabel string          `json:"y_label"`

	// Hue is the field whose values split records into lines.
	Hue string `json:"hue"`

	// Filename is the output file, relative to the output
	// directory. Its extension selects the image format.
	Filename string `json:"filename"`
}

// rawConfig is the file form of a Config. Absent labels and powers
// take their defaults.
type rawConfig struct {
	Filters  json.RawMessage `json:"filters"`
	XAxis    string          `json:"x_axis"`
	XPower   json.RawMessage `json:"x_power"`
	XLabel   *string         `json:"x_label"`
	YAxis    string          `json:"y_axis"`
	YPower   json.RawMessage `json:"y_power"`
	YLabel   *string         `json:"y_label"`
	Hue      string          `json:"hue"`
	Filename string          `json:"filename"`
}

// LoadConfigs reads chart configurations from the JSON file at path.
// The file holds an array of configurations or a single one.
func LoadConfigs(path string) ([]*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfgs, err := ParseConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfgs, nil
}

// ParseConfigs decodes chart configurations, applies defaults, and
// validates them.
func ParseConfigs(data []byte) ([]*Config, error) {
	data = bytes.TrimSpace(data)
	var raws []json.RawMessage
	if len(data) > 0 && data[0] == '{' {
		raws = []json.RawMessage{data}
	} else if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	cfgs := make([]*Config, len(raws))
	for i, raw := range raws {
		cfg, err := parseConfig(raw)
		if err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}
		cfgs[i] = cfg
	}
	return cfgs, nil
}

func parseConfig(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cfg := Config{
		Filters:  raw.Filters,
		XAxis:    raw.XAxis,
		XLabel:   DefaultXLabel,
		YAxis:    raw.YAxis,
		YLabel:   DefaultYLabel,
		Hue:      raw.Hue,
		Filename: raw.Filename,
	}
	if raw.XLabel != nil {
		cfg.XLabel = *raw.XLabel
	}
	if raw.YLabel != nil {
		cfg.YLabel = *raw.YLabel
	}
	var err error
	if cfg.XPower, err = power(raw.XPower, DefaultXPower); err != nil {
		return nil, fmt.Errorf("x_power: %w", err)
	}
	if cfg.YPower, err = power(raw.YPower, DefaultYPower); err != nil {
		return nil, fmt.Errorf("y_power: %w", err)
	}
	if cfg.XAxis == "" {
		cfg.XAxis = DefaultXAxis
	}
	if cfg.YAxis == "" {
		cfg.YAxis = DefaultYAxis
	}
	if cfg.Hue == "" {
		cfg.Hue = DefaultHue
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// power decodes an integer given as a JSON number or string.
func power(data json.RawMessage, dflt int) (benchunit.Power, error) {
	if data == nil {
		return benchunit.Power(dflt), nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s is not an integer", data)
	}
	return benchunit.Power(n), nil
}

// Validate checks that c names an output file, a query and existing
// record fields, and that both axes are numeric.
func (c *Config) Validate() error {
	if c.Filename == "" {
		return fmt.Errorf(`missing "filename"`)
	}
	if len(bytes.TrimSpace(c.Filters)) == 0 {
		return fmt.Errorf(`%s: missing "filters"`, c.Filename)
	}
	for _, axis := range []struct{ key, field string }{{"x_axis", c.XAxis}, {"y_axis", c.YAxis}} {
		f, ok := benchrec.LookupField(axis.field)
		if !ok {
			return fmt.Errorf("%s: %s: unknown field %q", c.Filename, axis.key, axis.field)
		}
		if f.Kind != benchrec.Number {
			return fmt.Errorf("%s: %s: field %q is a %s, not a number", c.Filename, axis.key, axis.field, f.Kind)
		}
	}
	if _, ok := benchrec.LookupField(c.Hue); !ok {
		return fmt.Errorf("%s: hue: unknown field %q", c.Filename, c.Hue)
	}
	return nil
}
