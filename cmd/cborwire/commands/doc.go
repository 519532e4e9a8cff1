// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the cborwire subcommands for producing,
// inspecting, validating, and hashing CBOR data from the command line.
//
// Subcommands:
//
//   - encode: convert JSON (or YAML) to CBOR.
//   - decode: convert CBOR to JSON.
//   - diag: convert CBOR to RFC 8949 Extended Diagnostic Notation.
//   - validate: verify CBOR uses this library's canonical profile.
//   - digest: BLAKE3 hash of the canonical re-encoding.
//
// All subcommands accept input from stdin or from a trailing file
// path argument. The --hex flag treats input as hex-encoded CBOR for
// working with wire dumps. With no subcommand, cborwire acts as an
// alias for cborwire decode.
package commands
