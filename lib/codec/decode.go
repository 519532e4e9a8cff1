// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/bureau-foundation/cborwire/lib/cbor"
)

// Decode decodes a single CBOR item from data with default options.
// Trailing bytes after the item are an error; use DecodeFirst to
// process CBOR sequences (RFC 8742) item by item.
//
// Wire types map to Go values as follows: integers to int64 (uint64
// when beyond the int64 range, *big.Int when below it), floats of any
// width to float64, byte strings to []byte, text strings to string,
// arrays to []any, maps to map[string]any, tag 1 to time.Time, tags
// 2/3 to *big.Int, tag 4 to Decimal, any other tag to Tagged. Both
// null and undefined decode to nil. Indefinite-length items are
// accepted everywhere the grammar allows them.
func Decode(data []byte) (any, error) {
	return DecodeWith(data, Options{})
}

// DecodeWith decodes a single item with explicit options. When a
// label table is supplied, integer map keys that the table names
// decode to their field names.
func DecodeWith(data []byte, opts Options) (any, error) {
	value, rest, err := DecodeFirstWith(data, opts)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("codec: %d trailing bytes after item", len(rest))
	}
	return value, nil
}

// DecodeFirst decodes the first item in data and returns the
// remaining unconsumed bytes.
func DecodeFirst(data []byte) (any, []byte, error) {
	return DecodeFirstWith(data, Options{})
}

// DecodeFirstWith is DecodeFirst with explicit options.
func DecodeFirstWith(data []byte, opts Options) (any, []byte, error) {
	d := &decoder{data: data, opts: opts}
	value, err := d.item()
	if err != nil {
		return nil, nil, err
	}
	return value, data[d.off:], nil
}

// Unmarshal decodes one complete item from data into *v.
func Unmarshal(data []byte, v *any) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

type decoder struct {
	data []byte
	off  int
	opts Options
}

func (d *decoder) fail(err error) error {
	return fmt.Errorf("codec: at byte %d: %w", d.off, err)
}

func (d *decoder) failf(format string, args ...any) error {
	return fmt.Errorf("codec: at byte %d: %s", d.off, fmt.Sprintf(format, args...))
}

func (d *decoder) item() (any, error) {
	start := d.off
	major, info, magnitude, n, err := cbor.DecodeHeader(d.data[d.off:])
	if err != nil {
		return nil, d.fail(err)
	}
	d.off += n

	switch major {
	case cbor.MajorUnsigned:
		if info == cbor.AddIndefinite {
			return nil, d.failf("indefinite length on integer")
		}
		if magnitude <= math.MaxInt64 {
			return int64(magnitude), nil
		}
		return magnitude, nil

	case cbor.MajorNegative:
		if info == cbor.AddIndefinite {
			return nil, d.failf("indefinite length on integer")
		}
		if magnitude <= math.MaxInt64 {
			return -1 - int64(magnitude), nil
		}
		value := new(big.Int).SetUint64(magnitude)
		value.Add(value, big.NewInt(1))
		return value.Neg(value), nil

	case cbor.MajorByteString:
		return d.stringItem(major, info, magnitude)

	case cbor.MajorTextString:
		payload, err := d.stringItem(major, info, magnitude)
		if err != nil {
			return nil, err
		}
		return string(payload), nil

	case cbor.MajorArray:
		return d.arrayItem(info, magnitude)

	case cbor.MajorMap:
		return d.mapItem(info, magnitude)

	case cbor.MajorTag:
		if info == cbor.AddIndefinite {
			return nil, d.failf("indefinite length on tag")
		}
		return d.taggedItem(magnitude)

	default: // cbor.MajorSimple
		if info == cbor.AddIndefinite {
			d.off = start
			return nil, d.failf("unexpected break")
		}
		return d.simpleItem(info, magnitude)
	}
}

// take consumes n payload bytes. The returned slice is a copy, so
// decoded values never alias the input buffer.
func (d *decoder) take(n uint64) ([]byte, error) {
	if n > uint64(len(d.data)-d.off) {
		return nil, d.failf("truncated: need %d payload bytes, have %d", n, len(d.data)-d.off)
	}
	payload := bytes.Clone(d.data[d.off : d.off+int(n)])
	d.off += int(n)
	return payload, nil
}

// atBreak reports whether the next byte is the break terminator, and
// consumes it when it is.
func (d *decoder) atBreak() bool {
	if d.off < len(d.data) && d.data[d.off] == cbor.SimpleBreak {
		d.off++
		return true
	}
	return false
}

func (d *decoder) stringItem(major cbor.MajorType, info byte, magnitude uint64) ([]byte, error) {
	if info != cbor.AddIndefinite {
		return d.take(magnitude)
	}

	// Chunked form: definite-length chunks of the same major type,
	// terminated by a break. The value is the concatenation.
	var assembled []byte
	for {
		if d.atBreak() {
			return assembled, nil
		}
		chunkMajor, chunkInfo, chunkLen, n, err := cbor.DecodeHeader(d.data[d.off:])
		if err != nil {
			return nil, d.fail(err)
		}
		if chunkMajor != major || chunkInfo == cbor.AddIndefinite {
			return nil, d.failf("invalid chunk inside indefinite string")
		}
		d.off += n
		chunk, err := d.take(chunkLen)
		if err != nil {
			return nil, err
		}
		assembled = append(assembled, chunk...)
	}
}

func (d *decoder) arrayItem(info byte, magnitude uint64) ([]any, error) {
	if info == cbor.AddIndefinite {
		elements := []any{}
		for {
			if d.atBreak() {
				return elements, nil
			}
			if d.off >= len(d.data) {
				return nil, d.failf("truncated indefinite array")
			}
			element, err := d.item()
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
	}

	elements := make([]any, 0, int(min(magnitude, 1024)))
	for i := uint64(0); i < magnitude; i++ {
		element, err := d.item()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

func (d *decoder) mapItem(info byte, magnitude uint64) (map[string]any, error) {
	entries := make(map[string]any)
	readEntry := func() error {
		key, err := d.item()
		if err != nil {
			return err
		}
		name, err := d.mapKey(key)
		if err != nil {
			return err
		}
		value, err := d.item()
		if err != nil {
			return err
		}
		entries[name] = value
		return nil
	}

	if info == cbor.AddIndefinite {
		for {
			if d.atBreak() {
				return entries, nil
			}
			if d.off >= len(d.data) {
				return nil, d.failf("truncated indefinite map")
			}
			if err := readEntry(); err != nil {
				return nil, err
			}
		}
	}
	for i := uint64(0); i < magnitude; i++ {
		if err := readEntry(); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// mapKey renders a decoded key as the string key of the Go map.
// Integer labels resolve through the label table when one is
// configured; unmapped integers fall back to their decimal text.
func (d *decoder) mapKey(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case int64:
		if d.opts.Labels != nil {
			if name, ok := d.opts.Labels.Name(k); ok {
				return name, nil
			}
		}
		return strconv.FormatInt(k, 10), nil
	case uint64:
		return strconv.FormatUint(k, 10), nil
	default:
		return "", d.failf("unsupported map key type %T", key)
	}
}

func (d *decoder) taggedItem(num uint64) (any, error) {
	inner, err := d.item()
	if err != nil {
		return nil, err
	}

	switch num {
	case cbor.TagEpochTime:
		switch t := inner.(type) {
		case int64:
			return time.Unix(t, 0).UTC(), nil
		case uint64:
			return time.Unix(int64(t), 0).UTC(), nil
		case float64:
			return time.UnixMilli(int64(math.Round(t * 1000))).UTC(), nil
		default:
			return nil, d.failf("epoch timestamp content is %T, want a number", inner)
		}

	case cbor.TagPositiveBignum:
		magnitude, ok := inner.([]byte)
		if !ok {
			return nil, d.failf("bignum content is %T, want a byte string", inner)
		}
		return new(big.Int).SetBytes(magnitude), nil

	case cbor.TagNegativeBignum:
		magnitude, ok := inner.([]byte)
		if !ok {
			return nil, d.failf("bignum content is %T, want a byte string", inner)
		}
		value := new(big.Int).SetBytes(magnitude)
		value.Add(value, big.NewInt(1))
		return value.Neg(value), nil

	case cbor.TagDecimalFraction:
		parts, ok := inner.([]any)
		if !ok || len(parts) != 2 {
			return nil, d.failf("decimal fraction content must be a 2-element array")
		}
		exponent, ok := parts[0].(int64)
		if !ok {
			return nil, d.failf("decimal fraction exponent is %T, want an integer", parts[0])
		}
		if exponent < math.MinInt32 || exponent > math.MaxInt32 {
			return nil, d.failf("decimal fraction exponent %d out of range", exponent)
		}
		var mantissa *big.Int
		switch m := parts[1].(type) {
		case int64:
			mantissa = big.NewInt(m)
		case uint64:
			mantissa = new(big.Int).SetUint64(m)
		case *big.Int:
			mantissa = m
		default:
			return nil, d.failf("decimal fraction mantissa is %T, want an integer", parts[1])
		}
		return Decimal{Mantissa: mantissa, Scale: int32(-exponent)}, nil

	default:
		return Tagged{Num: num, Value: inner}, nil
	}
}

func (d *decoder) simpleItem(info byte, magnitude uint64) (any, error) {
	switch {
	case info == 20:
		return false, nil
	case info == 21:
		return true, nil
	case info == 22, info == 23: // null, undefined
		return nil, nil
	case info == cbor.AddUint16:
		return float64(cbor.Float16Frombits(uint16(magnitude))), nil
	case info == cbor.AddUint32:
		return float64(math.Float32frombits(uint32(magnitude))), nil
	case info == cbor.AddUint64:
		return math.Float64frombits(magnitude), nil
	default:
		return nil, d.failf("unassigned simple value %d", magnitude)
	}
}
