// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the buffer-level CBOR entry points built on
// the sequential writer in lib/cbor.
//
// Marshal walks a dynamic Go value (primitives, strings, byte slices,
// big integers, decimals, timestamps, slices, string-keyed maps) and
// drives the writer; Decode and Unmarshal implement the symmetric
// reader. Diagnose renders RFC 8949 §8 diagnostic notation for
// inspecting wire bytes.
//
// Encoding is deterministic: map entries are sorted bytewise by their
// encoded key, integers and floats take their smallest exact form, and
// composite lengths are definite by default. Same logical data always
// produces identical bytes, which is what makes re-encoding usable for
// validation and content hashing.
//
// For buffer-oriented use:
//
//	data, err := codec.Marshal(value)
//	value, err := codec.Decode(data)
//
// Field label tables and the size policy thread through Options:
//
//	data, err := codec.MarshalWith(value, codec.Options{Labels: table})
//
// The walker handles dynamic values, not struct types. Protocol types
// with fixed schemas encode through lib/cbor directly, where the field
// order and label assignment are explicit in the code.
package codec
