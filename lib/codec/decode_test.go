// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/hex"
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/bureau-foundation/cborwire/lib/labels"
)

func decodeHex(t *testing.T, input string) any {
	t.Helper()
	data, err := hex.DecodeString(input)
	if err != nil {
		t.Fatalf("bad hex %q: %v", input, err)
	}
	value, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(%s): %v", input, err)
	}
	return value
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"00", int64(0)},
		{"17", int64(23)},
		{"1903e8", int64(1000)},
		{"1b7fffffffffffffff", int64(9223372036854775807)},
		{"1bffffffffffffffff", uint64(18446744073709551615)}, // beyond int64
		{"20", int64(-1)},
		{"3863", int64(-100)},
		{"3b7fffffffffffffff", int64(-9223372036854775808)},
		{"f4", false},
		{"f5", true},
		{"f6", nil},
		{"f7", nil}, // undefined decodes to nil
		{"f93e00", 1.5},
		{"fa47c35000", 100000.0},
		{"fb3ff199999999999a", 1.1},
		{"6449455446", "IETF"},
		{"60", ""},
		{"4401020304", []byte{1, 2, 3, 4}},
		{"40", []byte{}},
	}
	for _, test := range tests {
		got := decodeHex(t, test.input)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("Decode(%s) = %#v (%T), want %#v (%T)", test.input, got, got, test.want, test.want)
		}
	}
}

func TestDecodeNegativeBeyondInt64(t *testing.T) {
	// -2^64, encodable as major type 1 but not as int64.
	got := decodeHex(t, "3bffffffffffffffff")
	want, _ := new(big.Int).SetString("-18446744073709551616", 10)
	value, ok := got.(*big.Int)
	if !ok || value.Cmp(want) != 0 {
		t.Fatalf("Decode = %#v, want *big.Int %s", got, want)
	}
}

func TestDecodeContainers(t *testing.T) {
	got := decodeHex(t, "8301820203820405")
	want := []any{int64(1), []any{int64(2), int64(3)}, []any{int64(4), int64(5)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %#v, want %#v", got, want)
	}

	got = decodeHex(t, "a26161016162820203")
	wantMap := map[string]any{"a": int64(1), "b": []any{int64(2), int64(3)}}
	if !reflect.DeepEqual(got, wantMap) {
		t.Errorf("Decode = %#v, want %#v", got, wantMap)
	}
}

func TestDecodeIndefinite(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"9fff", []any{}},
		{"9f0102ff", []any{int64(1), int64(2)}},
		{"5f42010243030405ff", []byte{1, 2, 3, 4, 5}},
		{"7f657374726561646d696e67ff", "streaming"},
		{"bf61610161629f0203ffff", map[string]any{"a": int64(1), "b": []any{int64(2), int64(3)}}},
		{"5fff", []byte(nil)}, // zero chunks
		{"7fff", ""},
	}
	for _, test := range tests {
		got := decodeHex(t, test.input)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("Decode(%s) = %#v, want %#v", test.input, got, test.want)
		}
	}
}

func TestDecodeTags(t *testing.T) {
	if got := decodeHex(t, "c11a514b67b0"); !got.(time.Time).Equal(time.Unix(1363896240, 0)) {
		t.Errorf("epoch time = %v", got)
	}
	if got := decodeHex(t, "c1fb41d452d9ec200000"); !got.(time.Time).Equal(time.UnixMilli(1363896240500)) {
		t.Errorf("fractional epoch time = %v", got)
	}

	pow64 := new(big.Int).Lsh(big.NewInt(1), 64)
	if got := decodeHex(t, "c249010000000000000000"); got.(*big.Int).Cmp(pow64) != 0 {
		t.Errorf("positive bignum = %v", got)
	}
	negPow64 := new(big.Int).Neg(new(big.Int).Add(pow64, big.NewInt(1)))
	if got := decodeHex(t, "c349010000000000000000"); got.(*big.Int).Cmp(negPow64) != 0 {
		t.Errorf("negative bignum = %v", got)
	}

	decimal := decodeHex(t, "c48221196ab3").(Decimal)
	if decimal.Scale != 2 || decimal.Mantissa.Int64() != 27315 {
		t.Errorf("decimal fraction = %+v", decimal)
	}
	if decimal.String() != "273.15" {
		t.Errorf("decimal String = %q, want 273.15", decimal.String())
	}

	tagged := decodeHex(t, "d82063666f6f").(Tagged)
	if tagged.Num != 32 || tagged.Value != "foo" {
		t.Errorf("tagged = %+v", tagged)
	}
}

func TestDecodeWithLabels(t *testing.T) {
	table, err := labels.New(map[string]int64{"x": 5})
	if err != nil {
		t.Fatalf("labels.New: %v", err)
	}
	data, _ := hex.DecodeString("a20507090a") // {5: 7, 9: 10}

	got, err := DecodeWith(data, Options{Labels: table})
	if err != nil {
		t.Fatalf("DecodeWith: %v", err)
	}
	// 5 is mapped, 9 falls back to its decimal text.
	want := map[string]any{"x": int64(7), "9": int64(10)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeWith = %#v, want %#v", got, want)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	table, err := labels.New(map[string]int64{"action": 1, "count": 2})
	if err != nil {
		t.Fatalf("labels.New: %v", err)
	}
	opts := Options{Labels: table}

	original := map[string]any{
		"action": "grant",
		"count":  int64(42),
		"extra":  []any{true, nil, 1.5, "x"},
	}
	data, err := MarshalWith(original, opts)
	if err != nil {
		t.Fatalf("MarshalWith: %v", err)
	}
	decoded, err := DecodeWith(data, opts)
	if err != nil {
		t.Fatalf("DecodeWith: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip: got %#v, want %#v", decoded, original)
	}
}

func TestDecodeFirst(t *testing.T) {
	data, _ := hex.DecodeString("016374776f")
	value, rest, err := DecodeFirst(data)
	if err != nil {
		t.Fatalf("DecodeFirst: %v", err)
	}
	if value != int64(1) {
		t.Errorf("first item = %#v", value)
	}
	value, rest, err = DecodeFirst(rest)
	if err != nil {
		t.Fatalf("DecodeFirst: %v", err)
	}
	if value != "two" || len(rest) != 0 {
		t.Errorf("second item = %#v, rest %x", value, rest)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	data, _ := hex.DecodeString("0001")
	if _, err := Decode(data); err == nil {
		t.Fatal("Decode with trailing bytes succeeded")
	}
}

func TestDecodeErrors(t *testing.T) {
	inputs := []string{
		"",             // empty
		"18",           // truncated header
		"62e6",         // truncated text payload
		"ff",           // unexpected break
		"9f01",         // unterminated indefinite array
		"a161",         // truncated map key
		"f0",           // unassigned simple value 16
		"f820",         // unassigned simple value 32
		"c401",         // decimal fraction content not an array
		"c26161",       // bignum content not a byte string
		"5f01ff",       // non-string chunk inside indefinite string
		"5f7f6161ffff", // nested indefinite chunk
		"1f",           // indefinite length on integer
	}
	for _, input := range inputs {
		data, err := hex.DecodeString(input)
		if err != nil {
			t.Fatalf("bad hex %q: %v", input, err)
		}
		if _, decodeErr := Decode(data); decodeErr == nil {
			t.Errorf("Decode(%s) succeeded, want error", input)
		}
	}
}

func TestUnmarshal(t *testing.T) {
	data, _ := hex.DecodeString("83010203")
	var value any
	if err := Unmarshal(data, &value); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(value, []any{int64(1), int64(2), int64(3)}) {
		t.Errorf("Unmarshal = %#v", value)
	}
}
