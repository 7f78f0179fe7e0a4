// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchquery

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// ParseSpec decodes a JSON query into a Spec tree. A JSON array is
// normalized into an *And of its elements. ParseSpec checks only the
// shape of the document; Compile checks fields and bounds.
func ParseSpec(data []byte) (Spec, error) {
	return parseSpec(json.RawMessage(data))
}

type rawSpec struct {
	Kind   *string           `json:"kind"`
	Field  *string           `json:"field"`
	Match  json.RawMessage   `json:"match"`
	Min    json.RawMessage   `json:"min"`
	Max    json.RawMessage   `json:"max"`
	Negate *bool             `json:"negate"`
	Sub    []json.RawMessage `json:"sub"`
	Set    []json.RawMessage `json:"set"`
}

func parseSpec(data json.RawMessage) (Spec, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &QueryError{"", "empty query"}
	}
	switch data[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, &QueryError{compact(data), err.Error()}
		}
		subs, err := parseSubs(elems)
		if err != nil {
			return nil, err
		}
		return &And{subs}, nil
	case '{':
		// Handled below.
	default:
		return nil, &QueryError{compact(data), "query must be an object or an array"}
	}

	var raw rawSpec
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &QueryError{compact(data), err.Error()}
	}
	kind := "simple"
	if raw.Kind != nil {
		kind = *raw.Kind
	}
	negate := raw.Negate != nil && *raw.Negate

	switch kind {
	case "and", "or":
		if raw.Sub == nil {
			return nil, &QueryError{compact(data), fmt.Sprintf(`%s query needs "sub"`, kind)}
		}
		subs, err := parseSubs(raw.Sub)
		if err != nil {
			return nil, err
		}
		if kind == "and" {
			return &And{subs}, nil
		}
		return &Or{subs}, nil

	case "set":
		if raw.Field == nil {
			return nil, &QueryError{compact(data), `set query needs "field"`}
		}
		if raw.Set == nil {
			return nil, &QueryError{compact(data), `set query needs "set"`}
		}
		q := &Set{Field: *raw.Field, Negate: negate}
		for _, v := range raw.Set {
			s, err := scalar(v)
			if err != nil {
				return nil, &QueryError{compact(data), "set: " + err.Error()}
			}
			q.Values = append(q.Values, *s)
		}
		return q, nil

	case "simple":
		if raw.Field == nil {
			return nil, &QueryError{compact(data), `query needs "field"`}
		}
		q := &Simple{Field: *raw.Field, Negate: negate}
		for _, kv := range []struct {
			key string
			raw json.RawMessage
			dst **string
		}{{"match", raw.Match, &q.Match}, {"min", raw.Min, &q.Min}, {"max", raw.Max, &q.Max}} {
			if kv.raw == nil {
				continue
			}
			s, err := scalar(kv.raw)
			if err != nil {
				return nil, &QueryError{compact(data), kv.key + ": " + err.Error()}
			}
			*kv.dst = s
		}
		return q, nil
	}
	return nil, &QueryError{compact(data), fmt.Sprintf("unknown query kind %q", kind)}
}

func parseSubs(elems []json.RawMessage) ([]Spec, error) {
	subs := make([]Spec, len(elems))
	for i, elem := range elems {
		sub, err := parseSpec(elem)
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	return subs, nil
}

// scalar decodes a JSON string or number into its text. Numbers keep
// their literal spelling.
func scalar(data json.RawMessage) (*string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return &s, nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return nil, fmt.Errorf("want string or number, got %s", data)
	}
	s := string(data)
	return &s, nil
}

// compact renders a JSON fragment on one line for error messages.
func compact(data []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return string(data)
	}
	return buf.String()
}
