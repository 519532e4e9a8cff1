// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MajorType is the 3-bit top-level kind discriminator of an encoded
// data item (RFC 8949 §3).
type MajorType uint8

const (
	MajorUnsigned   MajorType = iota // non-negative integer
	MajorNegative                    // negative integer, magnitude -(n+1)
	MajorByteString                  // byte string
	MajorTextString                  // UTF-8 text string
	MajorArray                       // ordered sequence
	MajorMap                         // key/value pairs
	MajorTag                         // semantic tag prefixing one item
	MajorSimple                      // simple values and floats
)

// Additional-info values in the 5-bit field following the major type.
// 0–23 hold the magnitude directly; 24–27 announce a 1/2/4/8-byte
// big-endian magnitude; 31 marks indefinite length (or, under major
// type 7, the break byte).
const (
	AddUint8      = 24
	AddUint16     = 25
	AddUint32     = 26
	AddUint64     = 27
	AddIndefinite = 31
)

// Complete initial bytes for major type 7 items.
const (
	SimpleFalse     = 0xf4
	SimpleTrue      = 0xf5
	SimpleNull      = 0xf6
	SimpleUndefined = 0xf7
	SimpleFloat16   = 0xf9
	SimpleFloat32   = 0xfa
	SimpleFloat64   = 0xfb
	SimpleBreak     = 0xff
)

// Registered tags used by this package (RFC 8949 §3.4).
const (
	TagEpochTime       = 1 // integer or float seconds since the epoch
	TagPositiveBignum  = 2 // byte-string magnitude n
	TagNegativeBignum  = 3 // byte-string magnitude, value -(n+1)
	TagDecimalFraction = 4 // [exponent, mantissa], value m * 10^e
)

// AppendHeader appends the header for an item of the given major type
// and magnitude, choosing the smallest of the five width classes that
// represents the magnitude exactly. Every uint64 is representable.
func AppendHeader(dst []byte, major MajorType, magnitude uint64) []byte {
	base := byte(major) << 5
	switch {
	case magnitude <= 23:
		return append(dst, base|byte(magnitude))
	case magnitude <= math.MaxUint8:
		return append(dst, base|AddUint8, byte(magnitude))
	case magnitude <= math.MaxUint16:
		return binary.BigEndian.AppendUint16(append(dst, base|AddUint16), uint16(magnitude))
	case magnitude <= math.MaxUint32:
		return binary.BigEndian.AppendUint32(append(dst, base|AddUint32), uint32(magnitude))
	default:
		return binary.BigEndian.AppendUint64(append(dst, base|AddUint64), magnitude)
	}
}

// AppendIndefiniteHeader appends the indefinite-length header for the
// given major type. Only byte strings, text strings, arrays, and maps
// have an indefinite form; the caller must terminate the item with a
// break byte (AppendBreak).
func AppendIndefiniteHeader(dst []byte, major MajorType) []byte {
	return append(dst, byte(major)<<5|AddIndefinite)
}

// AppendBreak appends the break byte terminating an indefinite-length
// item.
func AppendBreak(dst []byte) []byte {
	return append(dst, SimpleBreak)
}

// DecodeHeader decodes one item header from the front of p. It returns
// the major type, the raw 5-bit additional-info value, the decoded
// magnitude (equal to the info value itself for 0–23, and zero for
// AddIndefinite), and the number of bytes consumed.
//
// The header grammar alone is decoded; the payload that may follow
// (string bytes, array elements, tagged item) is the caller's concern.
func DecodeHeader(p []byte) (major MajorType, info byte, magnitude uint64, n int, err error) {
	if len(p) == 0 {
		return 0, 0, 0, 0, fmt.Errorf("cbor: empty input decoding header")
	}
	major = MajorType(p[0] >> 5)
	info = p[0] & 0x1f

	var width int
	switch info {
	case AddUint8:
		width = 1
	case AddUint16:
		width = 2
	case AddUint32:
		width = 4
	case AddUint64:
		width = 8
	case 28, 29, 30:
		return 0, 0, 0, 0, fmt.Errorf("cbor: reserved additional info %d", info)
	case AddIndefinite:
		return major, info, 0, 1, nil
	default:
		return major, info, uint64(info), 1, nil
	}

	if len(p) < 1+width {
		return 0, 0, 0, 0, fmt.Errorf("cbor: truncated header: need %d magnitude bytes, have %d", width, len(p)-1)
	}
	switch width {
	case 1:
		magnitude = uint64(p[1])
	case 2:
		magnitude = uint64(binary.BigEndian.Uint16(p[1:]))
	case 4:
		magnitude = uint64(binary.BigEndian.Uint32(p[1:]))
	case 8:
		magnitude = binary.BigEndian.Uint64(p[1:])
	}
	return major, info, magnitude, 1 + width, nil
}
