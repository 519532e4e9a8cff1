// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"sort"
	"time"

	"github.com/bureau-foundation/cborwire/lib/cbor"
)

// Options configures encoding and decoding.
type Options struct {
	// Labels maps field names to integer map keys and back. Nil means
	// literal text keys everywhere.
	Labels cbor.LabelTable

	// Policy governs definite vs indefinite composite lengths. The
	// walker always knows element counts, so SizeRequired is
	// satisfiable for any input; SizeAlways forces the indefinite wire
	// form throughout.
	Policy cbor.SizePolicy
}

// RawMessage is a raw encoded CBOR item. Marshal writes it through
// verbatim, so callers can splice pre-encoded fragments into a larger
// document. The caller guarantees it is one complete valid item.
type RawMessage []byte

// Tagged attaches a semantic tag number to a value.
type Tagged struct {
	Num   uint64 `json:"tag"`
	Value any    `json:"value"`
}

// Marshal encodes v to CBOR with default options: text keys, definite
// lengths, deterministic map ordering.
func Marshal(v any) ([]byte, error) {
	return MarshalWith(v, Options{})
}

// MarshalWith encodes v to CBOR with explicit options.
func MarshalWith(v any, opts Options) ([]byte, error) {
	var buffer bytes.Buffer
	if err := encodeValue(cbor.New(&buffer, opts.Labels, opts.Policy), v, opts); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Encoder writes a stream of CBOR items to an io.Writer, one per
// Encode call (a CBOR sequence, RFC 8742).
type Encoder struct {
	w    *cbor.Writer
	opts Options
}

// NewEncoder returns an encoder writing to w with default options.
func NewEncoder(w io.Writer) *Encoder {
	return NewEncoderWith(w, Options{})
}

// NewEncoderWith returns an encoder writing to w with explicit
// options.
func NewEncoderWith(w io.Writer, opts Options) *Encoder {
	return &Encoder{w: cbor.New(w, opts.Labels, opts.Policy), opts: opts}
}

// Encode writes one item.
func (e *Encoder) Encode(v any) error {
	return encodeValue(e.w, v, e.opts)
}

func encodeValue(w *cbor.Writer, v any, opts Options) error {
	switch value := v.(type) {
	case nil:
		return w.WriteNull()
	case bool:
		return w.WriteBool(value)
	case int:
		return w.WriteInt(int64(value))
	case int8:
		return w.WriteInt(int64(value))
	case int16:
		return w.WriteInt(int64(value))
	case int32:
		return w.WriteInt(int64(value))
	case int64:
		return w.WriteInt(value)
	case uint:
		return w.WriteUint(uint64(value))
	case uint8:
		return w.WriteUint(uint64(value))
	case uint16:
		return w.WriteUint(uint64(value))
	case uint32:
		return w.WriteUint(uint64(value))
	case uint64:
		return w.WriteUint(value)
	case float32:
		return w.WriteFloat(float64(value))
	case float64:
		return w.WriteFloat(value)
	case string:
		return w.WriteText(value)
	case []byte:
		return w.WriteBytes(value)
	case *big.Int:
		return w.WriteBigInt(value)
	case big.Int:
		return w.WriteBigInt(&value)
	case Decimal:
		return w.WriteBigDecimal(value.Mantissa, value.Scale)
	case time.Time:
		return w.WriteTime(value)
	case RawMessage:
		return w.WriteRaw(value)
	case Tagged:
		if err := w.WriteTag(value.Num); err != nil {
			return err
		}
		return encodeValue(w, value.Value, opts)
	case []any:
		return encodeArray(w, value, opts)
	case map[string]any:
		return encodeMap(w, value, opts)
	}
	return encodeReflect(w, v, opts)
}

func encodeArray(w *cbor.Writer, elements []any, opts Options) error {
	array := w.OpenArray()
	if err := array.DeclareSize(len(elements)); err != nil {
		return err
	}
	for _, element := range elements {
		elementWriter, err := array.Element()
		if err != nil {
			return err
		}
		if err := encodeValue(elementWriter, element, opts); err != nil {
			return err
		}
	}
	return array.Finish()
}

// encodeMap emits entries sorted bytewise by their encoded key. The
// key encoding respects the label table, so sorting happens on the
// wire representation (integer labels order before text keys), which
// is what makes the output deterministic for a given table.
func encodeMap(w *cbor.Writer, entries map[string]any, opts Options) error {
	type entry struct {
		key   []byte
		value any
	}
	sorted := make([]entry, 0, len(entries))
	for name, value := range entries {
		key, err := encodeKey(name, opts)
		if err != nil {
			return err
		}
		sorted = append(sorted, entry{key: key, value: value})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].key, sorted[j].key) < 0
	})

	m := w.OpenMap()
	if err := m.DeclareSize(len(sorted)); err != nil {
		return err
	}
	for _, e := range sorted {
		keyWriter, err := m.Key()
		if err != nil {
			return err
		}
		if err := keyWriter.WriteRaw(e.key); err != nil {
			return err
		}
		valueWriter, err := m.Value()
		if err != nil {
			return err
		}
		if err := encodeValue(valueWriter, e.value, opts); err != nil {
			return err
		}
	}
	return m.Finish()
}

// encodeKey renders one map key to its wire form: the integer label
// when the table maps the name, the literal text string otherwise.
func encodeKey(name string, opts Options) ([]byte, error) {
	var buffer bytes.Buffer
	w := cbor.New(&buffer, nil, cbor.SizeOptional)
	if opts.Labels != nil {
		if label, ok := opts.Labels.Label(name); ok {
			if err := w.WriteInt(label); err != nil {
				return nil, err
			}
			return buffer.Bytes(), nil
		}
	}
	if err := w.WriteText(name); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// encodeReflect handles named types and container shapes that the
// type switch cannot: named primitives, arbitrary slices and arrays,
// string-keyed maps, and pointers.
func encodeReflect(w *cbor.Writer, v any, opts Options) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return w.WriteNull()
		}
		return encodeValue(w, rv.Elem().Interface(), opts)
	case reflect.Bool:
		return w.WriteBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.WriteInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return w.WriteUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return w.WriteFloat(rv.Float())
	case reflect.String:
		return w.WriteText(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return w.WriteBytes(rv.Bytes())
		}
		elements := make([]any, rv.Len())
		for i := range elements {
			elements[i] = rv.Index(i).Interface()
		}
		return encodeArray(w, elements, opts)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("codec: cannot encode map with %s keys", rv.Type().Key())
		}
		entries := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries[iter.Key().String()] = iter.Value().Interface()
		}
		return encodeMap(w, entries, opts)
	default:
		return fmt.Errorf("codec: cannot encode %T", v)
	}
}
