// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestAppendHeaderWidthClasses(t *testing.T) {
	tests := []struct {
		major     MajorType
		magnitude uint64
		want      string // hex
	}{
		// Boundaries of the five width classes.
		{MajorUnsigned, 0, "00"},
		{MajorUnsigned, 23, "17"},
		{MajorUnsigned, 24, "1818"},
		{MajorUnsigned, 255, "18ff"},
		{MajorUnsigned, 256, "190100"},
		{MajorUnsigned, 65535, "19ffff"},
		{MajorUnsigned, 65536, "1a00010000"},
		{MajorUnsigned, 4294967295, "1affffffff"},
		{MajorUnsigned, 4294967296, "1b0000000100000000"},
		{MajorUnsigned, 18446744073709551615, "1bffffffffffffffff"},
		// The major type occupies the top three bits.
		{MajorNegative, 9, "29"},
		{MajorByteString, 4, "44"},
		{MajorTextString, 24, "7818"},
		{MajorArray, 3, "83"},
		{MajorMap, 300, "b9012c"},
		{MajorTag, 1, "c1"},
	}

	for _, test := range tests {
		got := AppendHeader(nil, test.major, test.magnitude)
		if hex.EncodeToString(got) != test.want {
			t.Errorf("AppendHeader(%d, %d) = %x, want %s", test.major, test.magnitude, got, test.want)
		}
	}
}

func TestAppendHeaderRoundTrip(t *testing.T) {
	magnitudes := []uint64{
		0, 1, 23, 24, 25, 255, 256, 65535, 65536,
		1 << 24, 1<<32 - 1, 1 << 32, 1 << 48, 1<<64 - 1,
	}
	for _, magnitude := range magnitudes {
		encoded := AppendHeader(nil, MajorUnsigned, magnitude)
		major, _, decoded, n, err := DecodeHeader(encoded)
		if err != nil {
			t.Fatalf("DecodeHeader(%x): %v", encoded, err)
		}
		if major != MajorUnsigned || decoded != magnitude || n != len(encoded) {
			t.Errorf("DecodeHeader(%x) = (%d, %d, %d), want (%d, %d, %d)",
				encoded, major, decoded, n, MajorUnsigned, magnitude, len(encoded))
		}
	}
}

func TestDecodeHeaderIndefinite(t *testing.T) {
	major, info, magnitude, n, err := DecodeHeader(AppendIndefiniteHeader(nil, MajorArray))
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if major != MajorArray || info != AddIndefinite || magnitude != 0 || n != 1 {
		t.Errorf("got (%d, %d, %d, %d), want (%d, %d, 0, 1)", major, info, magnitude, n, MajorArray, AddIndefinite)
	}
}

func TestDecodeHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"reserved info 28", []byte{0x1c}},
		{"reserved info 29", []byte{0x1d}},
		{"reserved info 30", []byte{0x1e}},
		{"truncated uint8", []byte{0x18}},
		{"truncated uint16", []byte{0x19, 0x01}},
		{"truncated uint32", []byte{0x1a, 0x01, 0x02}},
		{"truncated uint64", []byte{0x1b, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}
	for _, test := range tests {
		if _, _, _, _, err := DecodeHeader(test.input); err == nil {
			t.Errorf("%s: DecodeHeader(%x) succeeded, want error", test.name, test.input)
		}
	}
}

func TestAppendBreak(t *testing.T) {
	if got := AppendBreak(nil); !bytes.Equal(got, []byte{0xff}) {
		t.Errorf("AppendBreak = %x, want ff", got)
	}
}
