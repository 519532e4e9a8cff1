// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func TestDiagCBOR(t *testing.T) {
	data, _ := hex.DecodeString("a201020304" + "9f0102ff" + "d82063666f6f")
	var out bytes.Buffer
	if err := diagCBOR(data, &out); err != nil {
		t.Fatalf("diagCBOR: %v", err)
	}
	want := "{1: 2, 3: 4}\n[_ 1, 2]\n32(\"foo\")\n"
	if out.String() != want {
		t.Errorf("diag = %q, want %q", out.String(), want)
	}
}

func TestDiagCBOREmpty(t *testing.T) {
	var out bytes.Buffer
	if err := diagCBOR(nil, &out); err == nil || !strings.Contains(err.Error(), "empty input") {
		t.Errorf("empty input: %v", err)
	}
}

func TestDiagCBORError(t *testing.T) {
	data, _ := hex.DecodeString("83010262e6") // truncated text inside array
	var out bytes.Buffer
	if err := diagCBOR(data, &out); err == nil {
		t.Error("truncated input accepted")
	}
}
