// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeHexInput(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
	}{
		{"a1636b6579", []byte{0xa1, 0x63, 0x6b, 0x65, 0x79}},
		{"a1 63 6b 65 79", []byte{0xa1, 0x63, 0x6b, 0x65, 0x79}},
		{"  a163\n6b65\t79\n", []byte{0xa1, 0x63, 0x6b, 0x65, 0x79}},
	}
	for _, test := range tests {
		got, err := decodeHexInput([]byte(test.input))
		if err != nil {
			t.Fatalf("decodeHexInput(%q): %v", test.input, err)
		}
		if !bytes.Equal(got, test.want) {
			t.Errorf("decodeHexInput(%q) = %x, want %x", test.input, got, test.want)
		}
	}
}

func TestDecodeHexInputErrors(t *testing.T) {
	for _, input := range []string{"", "   \n", "abc", "zz"} {
		if _, err := decodeHexInput([]byte(input)); err == nil {
			t.Errorf("decodeHexInput(%q) succeeded, want error", input)
		}
	}
}

func TestZstdRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("cbor cbor cbor "), 100)
	compressed, err := compressOutput(original)
	if err != nil {
		t.Fatalf("compressOutput: %v", err)
	}
	if len(compressed) >= len(original) {
		t.Errorf("repetitive input did not compress: %d >= %d", len(compressed), len(original))
	}
	decompressed, err := decompressInput(compressed)
	if err != nil {
		t.Fatalf("decompressInput: %v", err)
	}
	if !bytes.Equal(decompressed, original) {
		t.Error("round trip changed the data")
	}
}

func TestDecompressInputRejectsGarbage(t *testing.T) {
	if _, err := decompressInput([]byte("not a zstd frame")); err == nil {
		t.Error("decompressInput accepted garbage")
	}
}

func TestReadInputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.cbor")
	if err := os.WriteFile(path, []byte{0x83, 0x01, 0x02, 0x03}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, remaining, err := readInput([]string{path}, false, false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0x83, 0x01, 0x02, 0x03}) {
		t.Errorf("data = %x", data)
	}
	if len(remaining) != 0 {
		t.Errorf("remaining args = %v", remaining)
	}
}

func TestReadInputHexFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.hex")
	if err := os.WriteFile(path, []byte("83 01 02 03\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, _, err := readInput([]string{path}, true, false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0x83, 0x01, 0x02, 0x03}) {
		t.Errorf("data = %x", data)
	}
}

func TestReadInputFromStdin(t *testing.T) {
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	saved := os.Stdin
	os.Stdin = reader
	defer func() { os.Stdin = saved }()

	go func() {
		writer.Write([]byte{0x01, 0x02})
		writer.Close()
	}()

	data, remaining, err := readInput(nil, false, false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0x01, 0x02}) {
		t.Errorf("data = %x", data)
	}
	if len(remaining) != 0 {
		t.Errorf("remaining args = %v", remaining)
	}
}
