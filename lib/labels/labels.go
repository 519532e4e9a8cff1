// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package labels provides field label tables: bidirectional mappings
// from field names to compact integer map keys.
//
// A label table shrinks CBOR maps by replacing text keys with small
// integers, in the style of keyasint protocol encodings. The writer in
// lib/cbor consumes the table through its LabelTable interface; a name
// without a mapping is written as a literal text string, so a table
// never changes what a document means, only how large it is. Both
// sides of a protocol must of course agree on the table.
package labels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Static is an immutable bidirectional name↔label mapping. It
// implements the cbor.LabelTable interface.
type Static struct {
	byName  map[string]int64
	byLabel map[int64]string
}

// New builds a table from a name→label mapping. Duplicate labels are
// rejected: a table that cannot be inverted would silently decode two
// fields into one.
func New(byName map[string]int64) (*Static, error) {
	table := &Static{
		byName:  make(map[string]int64, len(byName)),
		byLabel: make(map[int64]string, len(byName)),
	}
	for name, label := range byName {
		if existing, ok := table.byLabel[label]; ok {
			return nil, fmt.Errorf("labels: label %d assigned to both %q and %q", label, existing, name)
		}
		table.byName[name] = label
		table.byLabel[label] = name
	}
	return table, nil
}

// Label returns the integer label for name.
func (s *Static) Label(name string) (int64, bool) {
	label, ok := s.byName[name]
	return label, ok
}

// Name returns the field name for label.
func (s *Static) Name(label int64) (string, bool) {
	name, ok := s.byLabel[label]
	return name, ok
}

// Len returns the number of mappings.
func (s *Static) Len() int {
	return len(s.byName)
}

// Parse builds a table from a YAML document mapping field names to
// integer labels:
//
//	action: 1
//	principal: 2
//	count: 3
func Parse(data []byte) (*Static, error) {
	var byName map[string]int64
	if err := yaml.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("labels: parse: %w", err)
	}
	return New(byName)
}

// LoadFile reads a YAML label table from path.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("labels: read %s: %w", path, err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
