// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "math"

// Float16NaN is the canonical half-precision NaN. Every NaN input
// encodes as this value regardless of its originating width or
// payload bits.
const Float16NaN uint16 = 0x7e00

// Float16Bits converts f to IEEE 754 half precision. The second
// result reports whether the conversion is exact: half → single
// widening of the returned bits reproduces f bit-for-bit. When it is
// false the returned bits are zero and f must be encoded at a wider
// precision. NaN inputs report false; callers handle NaN before
// narrowing (the wire form is the canonical Float16NaN).
func Float16Bits(f float32) (uint16, bool) {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int(b>>23) & 0xff
	frac := b & 0x7fffff

	if exp == 0xff {
		if frac != 0 {
			return 0, false // NaN: canonical form is chosen elsewhere
		}
		return sign | 0x7c00, true // ±Inf
	}
	if exp == 0 && frac == 0 {
		return sign, true // ±0
	}

	// Rebase the exponent from single bias (127) to half bias (15).
	e := exp - 127 + 15
	switch {
	case e >= 0x1f:
		return 0, false // magnitude overflows the half range
	case e > 0:
		// Normal half: the low 13 fraction bits must be zero.
		if frac&0x1fff != 0 {
			return 0, false
		}
		return sign | uint16(e)<<10 | uint16(frac>>13), true
	default:
		// Subnormal half: shift the full 24-bit significand (implicit
		// bit included) down into 2^-24 units.
		m := frac | 0x800000
		shift := uint(14 - e)
		if shift > 24 {
			return 0, false // below the smallest half subnormal
		}
		if m&(1<<shift-1) != 0 {
			return 0, false
		}
		return sign | uint16(m>>shift), true
	}
}

// Float16Frombits widens IEEE 754 half-precision bits to float32. The
// conversion is always exact: every half value is representable at
// single precision.
func Float16Frombits(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	switch {
	case exp == 0x1f:
		// Inf or NaN; the NaN payload moves to the top of the wider
		// fraction field.
		return math.Float32frombits(sign | 0x7f800000 | frac<<13)
	case exp != 0:
		return math.Float32frombits(sign | (exp+112)<<23 | frac<<13)
	case frac == 0:
		return math.Float32frombits(sign)
	default:
		// Subnormal: normalize by shifting the fraction up until the
		// implicit bit position is occupied.
		shift := uint32(0)
		for frac&0x400 == 0 {
			frac <<= 1
			shift++
		}
		frac &= 0x3ff
		return math.Float32frombits(sign | (113-shift)<<23 | frac<<13)
	}
}
