// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"math"
	"testing"
)

func TestFloat16BitsExact(t *testing.T) {
	tests := []struct {
		value float32
		want  uint16
	}{
		{0, 0x0000},
		{float32(math.Copysign(0, -1)), 0x8000},
		{1, 0x3c00},
		{-1, 0xbc00},
		{1.5, 0x3e00},
		{-4, 0xc400},
		{65504, 0x7bff}, // largest finite half
		{6.103515625e-05, 0x0400},  // smallest normal half, 2^-14
		{6.097555160522461e-05, 0x03ff}, // largest subnormal half
		{5.960464477539063e-08, 0x0001}, // smallest subnormal half, 2^-24
		{float32(math.Inf(1)), 0x7c00},
		{float32(math.Inf(-1)), 0xfc00},
	}

	for _, test := range tests {
		got, exact := Float16Bits(test.value)
		if !exact || got != test.want {
			t.Errorf("Float16Bits(%g) = (%#04x, %t), want (%#04x, true)", test.value, got, exact, test.want)
		}
	}
}

func TestFloat16BitsInexact(t *testing.T) {
	values := []float32{
		1.1,                    // fraction needs more than 10 bits
		65505,                  // between half-representable values
		65536,                  // above the half range
		2.9802322387695312e-08, // 2^-25, below the smallest subnormal
		float32(math.NaN()),    // canonical NaN is chosen by the writer
	}
	for _, value := range values {
		if _, exact := Float16Bits(value); exact {
			t.Errorf("Float16Bits(%g) reported exact, want inexact", value)
		}
	}
}

// TestFloat16RoundTripAll widens every half-precision bit pattern and
// narrows it back. Every non-NaN pattern must survive unchanged; this
// pins both conversion directions across normals, subnormals, zeros,
// and infinities.
func TestFloat16RoundTripAll(t *testing.T) {
	for h := 0; h <= 0xffff; h++ {
		bits := uint16(h)
		widened := Float16Frombits(bits)
		if math.IsNaN(float64(widened)) {
			continue
		}
		narrowed, exact := Float16Bits(widened)
		if !exact {
			t.Fatalf("half %#04x widened to %g but would not narrow back", bits, widened)
		}
		if narrowed != bits {
			t.Fatalf("half %#04x round-tripped to %#04x (via %g)", bits, narrowed, widened)
		}
	}
}

func TestFloat16FrombitsValues(t *testing.T) {
	tests := []struct {
		bits uint16
		want float32
	}{
		{0x0000, 0},
		{0x3c00, 1},
		{0x3e00, 1.5},
		{0x7bff, 65504},
		{0x0400, 6.103515625e-05},
		{0x0001, 5.960464477539063e-08},
		{0xc400, -4},
	}
	for _, test := range tests {
		if got := Float16Frombits(test.bits); got != test.want {
			t.Errorf("Float16Frombits(%#04x) = %g, want %g", test.bits, got, test.want)
		}
	}
}
