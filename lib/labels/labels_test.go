// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package labels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStaticLookup(t *testing.T) {
	table, err := New(map[string]int64{"action": 1, "principal": 2, "count": -3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len = %d, want 3", table.Len())
	}

	label, ok := table.Label("principal")
	if !ok || label != 2 {
		t.Errorf("Label(principal) = (%d, %t), want (2, true)", label, ok)
	}
	name, ok := table.Name(-3)
	if !ok || name != "count" {
		t.Errorf("Name(-3) = (%q, %t), want (count, true)", name, ok)
	}

	if _, ok := table.Label("missing"); ok {
		t.Error("Label(missing) reported a mapping")
	}
	if _, ok := table.Name(99); ok {
		t.Error("Name(99) reported a mapping")
	}
}

func TestNewRejectsDuplicateLabels(t *testing.T) {
	_, err := New(map[string]int64{"a": 1, "b": 1})
	if err == nil {
		t.Fatal("New accepted two names sharing one label")
	}
	if !strings.Contains(err.Error(), "label 1") {
		t.Errorf("error %q does not name the colliding label", err)
	}
}

func TestParse(t *testing.T) {
	table, err := Parse([]byte("action: 1\nprincipal: 2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if label, ok := table.Label("action"); !ok || label != 1 {
		t.Errorf("Label(action) = (%d, %t), want (1, true)", label, ok)
	}
}

func TestParseEmpty(t *testing.T) {
	table, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len = %d, want 0", table.Len())
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"- a\n- b\n",       // a sequence, not a mapping
		"action: high\n",   // non-integer label
		"a: 1\nb: 1\n",     // duplicate label
		"action: [1, 2]\n", // label is a list
	}
	for _, input := range inputs {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	if err := os.WriteFile(path, []byte("x: 5\ny: 6\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if label, ok := table.Label("y"); !ok || label != 6 {
		t.Errorf("Label(y) = (%d, %t), want (6, true)", label, ok)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadFile on a missing path succeeded")
	}
}
