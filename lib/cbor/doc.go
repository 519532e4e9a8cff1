// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor implements a sequential writer for RFC 8949 Concise
// Binary Object Representation (CBOR).
//
// The writer is deliberately low-level: it exposes one method per wire
// construct (integers, floats, strings, tags, arrays, maps, chunked
// strings) and performs direct, unbuffered writes to the bound
// io.Writer. Higher-level concerns (walking Go values, deterministic
// map ordering, decoding) live in lib/codec.
//
// Encodings are size-minimizing. Integer headers use the smallest of
// the five width classes. Floats are folded to integers when the value
// is exactly integral, and otherwise narrowed to single or half
// precision whenever the narrower form round-trips to the identical
// value. Integers outside the 64-bit wire range fall back to bignum
// tags with minimal big-endian magnitudes.
//
// Composite values follow a Fresh→Open→Finished lifecycle. The length
// discipline (definite count vs indefinite with a break terminator) is
// committed once, when the first child is requested, and is governed by
// the declared size and the writer's SizePolicy. Nested values form a
// strict stack: a child writer obtained from Element, Key, Value, or
// Field owns the sink until its own value is complete, and the parent
// must not be touched until then. The writer does not police this
// convention; violating it corrupts the stream.
package cbor
