// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"time"
)

// SizePolicy governs the length discipline for composites opened
// without a declared size.
type SizePolicy int

const (
	// SizeOptional permits indefinite-length encoding when no size was
	// declared. The default.
	SizeOptional SizePolicy = iota

	// SizeRequired rejects any composite opened without a declared
	// size with ErrSizeRequired.
	SizeRequired

	// SizeAlways emits every composite with indefinite length. A
	// declared size never reaches the wire but is still enforced as an
	// exact element budget: over- and under-count errors apply as
	// under definite encoding.
	SizeAlways
)

// String returns the policy name as used by CLI flags.
func (p SizePolicy) String() string {
	switch p {
	case SizeOptional:
		return "optional"
	case SizeRequired:
		return "required"
	case SizeAlways:
		return "always"
	default:
		return fmt.Sprintf("SizePolicy(%d)", int(p))
	}
}

// LabelTable resolves field names to compact integer map keys and
// back. The writer consumes it through MapWriter.Field; it never
// constructs one. A nil table means every field name is written as a
// literal text string. See lib/labels for implementations.
type LabelTable interface {
	// Label returns the integer label for a field name. The second
	// result is false when the name has no mapping.
	Label(name string) (int64, bool)

	// Name returns the field name for an integer label. The second
	// result is false when the label has no mapping.
	Name(label int64) (string, bool)
}

// Writer emits CBOR items to an io.Writer sink. Every method performs
// a direct, blocking write and returns only after the bytes were
// submitted to the sink; the writer itself holds no buffered state.
// The only failure mode of scalar methods is a sink write error,
// which wraps the underlying error and terminates the encode.
//
// A Writer is not safe for concurrent use. Composite methods hand the
// same underlying sink to child writers; see the package documentation
// for the stack discipline callers must follow.
type Writer struct {
	sink    io.Writer
	labels  LabelTable
	policy  SizePolicy
	scratch []byte
}

// New returns a writer bound to sink. table may be nil (no field
// labels). policy applies to every composite opened through this
// writer and its children.
func New(sink io.Writer, table LabelTable, policy SizePolicy) *Writer {
	return &Writer{sink: sink, labels: table, policy: policy, scratch: make([]byte, 0, 16)}
}

func (w *Writer) write(p []byte) error {
	if _, err := w.sink.Write(p); err != nil {
		return fmt.Errorf("cbor: sink write: %w", err)
	}
	return nil
}

func (w *Writer) flushScratch() error {
	err := w.write(w.scratch)
	w.scratch = w.scratch[:0]
	return err
}

func (w *Writer) writeHeader(major MajorType, magnitude uint64) error {
	w.scratch = AppendHeader(w.scratch[:0], major, magnitude)
	return w.flushScratch()
}

func (w *Writer) writeByte(b byte) error {
	w.scratch = append(w.scratch[:0], b)
	return w.flushScratch()
}

// writeString emits a definite-length byte or text string: header
// followed by the payload bytes.
func (w *Writer) writeString(major MajorType, p []byte) error {
	if err := w.writeHeader(major, uint64(len(p))); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return w.write(p)
}

// WriteNull emits the null simple value.
func (w *Writer) WriteNull() error {
	return w.writeByte(SimpleNull)
}

// WriteBool emits true or false.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.writeByte(SimpleTrue)
	}
	return w.writeByte(SimpleFalse)
}

// WriteInt emits a signed integer. Negative values use the wire
// format's offset encoding (major type 1 with magnitude -(n+1)), so
// the full int64 range including math.MinInt64 encodes without
// widening.
func (w *Writer) WriteInt(n int64) error {
	if n >= 0 {
		return w.writeHeader(MajorUnsigned, uint64(n))
	}
	return w.writeHeader(MajorNegative, uint64(-1-n))
}

// WriteUint emits an unsigned integer. Values beyond math.MaxInt64
// remain plain major type 0 items; no bignum fallback is needed.
func (w *Writer) WriteUint(n uint64) error {
	return w.writeHeader(MajorUnsigned, n)
}

// maxExactInt64 is 2^63 as a float64. Any float strictly below it (and
// at least -2^63) converts to int64 without overflow.
const maxExactInt64 = float64(1 << 63)

// WriteFloat emits x at the smallest width that reproduces it exactly,
// in fixed priority order: an exactly integral value in int64 range
// encodes as an integer; NaN encodes as the canonical half-precision
// NaN; otherwise the value narrows to half or single precision when
// the narrower form round-trips bit-exactly, and stays double
// precision when it does not. A decoder always recovers a value equal
// to x.
func (w *Writer) WriteFloat(x float64) error {
	if math.Trunc(x) == x && x >= -maxExactInt64 && x < maxExactInt64 {
		return w.WriteInt(int64(x))
	}
	if math.IsNaN(x) {
		w.scratch = append(w.scratch[:0], SimpleFloat16, byte(Float16NaN>>8), byte(Float16NaN&0xff))
		return w.flushScratch()
	}
	if narrow := float32(x); float64(narrow) == x {
		if half, exact := Float16Bits(narrow); exact {
			w.scratch = append(w.scratch[:0], SimpleFloat16, byte(half>>8), byte(half))
			return w.flushScratch()
		}
		bits := math.Float32bits(narrow)
		w.scratch = append(w.scratch[:0], SimpleFloat32,
			byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
		return w.flushScratch()
	}
	bits := math.Float64bits(x)
	w.scratch = append(w.scratch[:0], SimpleFloat64,
		byte(bits>>56), byte(bits>>48), byte(bits>>40), byte(bits>>32),
		byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
	return w.flushScratch()
}

// WriteBigInt emits an arbitrary-precision integer. Values inside the
// wire format's native 64-bit range (0..2^64-1 and -2^64..-1) encode
// as plain integers; anything larger becomes a bignum tag followed by
// the minimal big-endian magnitude.
func (w *Writer) WriteBigInt(n *big.Int) error {
	if n.Sign() >= 0 {
		if n.IsUint64() {
			return w.WriteUint(n.Uint64())
		}
		if err := w.writeHeader(MajorTag, TagPositiveBignum); err != nil {
			return err
		}
		return w.writeString(MajorByteString, n.Bytes())
	}

	// magnitude = -(n+1), the offset form shared with major type 1.
	magnitude := new(big.Int).Neg(n)
	magnitude.Sub(magnitude, big.NewInt(1))
	if magnitude.IsUint64() {
		return w.writeHeader(MajorNegative, magnitude.Uint64())
	}
	if err := w.writeHeader(MajorTag, TagNegativeBignum); err != nil {
		return err
	}
	return w.writeString(MajorByteString, magnitude.Bytes())
}

// WriteBigDecimal emits mantissa * 10^(-scale) as a decimal fraction:
// tag 4 wrapping a two-element array of the exponent (-scale) and the
// mantissa.
func (w *Writer) WriteBigDecimal(mantissa *big.Int, scale int32) error {
	if err := w.writeHeader(MajorTag, TagDecimalFraction); err != nil {
		return err
	}
	if err := w.writeHeader(MajorArray, 2); err != nil {
		return err
	}
	if err := w.WriteInt(-int64(scale)); err != nil {
		return err
	}
	return w.WriteBigInt(mantissa)
}

// WriteText emits a definite-length text string. s must be valid
// UTF-8; the writer does not validate.
func (w *Writer) WriteText(s string) error {
	if err := w.writeHeader(MajorTextString, uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return w.write([]byte(s))
}

// WriteBytes emits a definite-length byte string.
func (w *Writer) WriteBytes(p []byte) error {
	return w.writeString(MajorByteString, p)
}

// WriteTime emits t as an epoch timestamp (tag 1) at millisecond
// precision: an integer second count when the value divides evenly
// into seconds, a fractional float otherwise.
func (w *Writer) WriteTime(t time.Time) error {
	if err := w.writeHeader(MajorTag, TagEpochTime); err != nil {
		return err
	}
	millis := t.UnixMilli()
	if millis%1000 == 0 {
		return w.WriteInt(millis / 1000)
	}
	return w.WriteFloat(float64(millis) / 1000)
}

// WriteTag emits a semantic tag. The caller must follow with exactly
// one item, the tag content.
func (w *Writer) WriteTag(num uint64) error {
	return w.writeHeader(MajorTag, num)
}

// WriteRaw copies p to the sink verbatim. The caller guarantees p is
// one complete, valid encoded item; the writer performs no validation.
func (w *Writer) WriteRaw(p []byte) error {
	return w.write(p)
}

// OpenArray returns a composite writer for an array scoped to the
// current position. The caller must drive it to Finish before using
// this writer again.
func (w *Writer) OpenArray() *ArrayWriter {
	a := &ArrayWriter{}
	a.c.init(w, MajorArray, 1, "array")
	return a
}

// OpenMap returns a composite writer for a map scoped to the current
// position. The caller must drive it to Finish before using this
// writer again.
func (w *Writer) OpenMap() *MapWriter {
	m := &MapWriter{}
	m.c.init(w, MajorMap, 2, "map")
	return m
}

// OpenTextChunks returns a chunked writer emitting an indefinite-
// length text string. Each chunk must be valid UTF-8 on its own.
func (w *Writer) OpenTextChunks() *ChunkedWriter {
	c := &ChunkedWriter{}
	c.c.init(w, MajorTextString, 1, "text chunks")
	c.c.forceIndefinite = true
	return c
}

// OpenByteChunks returns a chunked writer emitting an indefinite-
// length byte string.
func (w *Writer) OpenByteChunks() *ChunkedWriter {
	c := &ChunkedWriter{}
	c.c.init(w, MajorByteString, 1, "byte chunks")
	c.c.forceIndefinite = true
	return c
}
