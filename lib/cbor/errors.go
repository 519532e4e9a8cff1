// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "errors"

// Protocol errors returned by composite writers. All abort the
// in-progress encode: bytes already written to the sink are invalid
// and must be discarded by the caller. Match with errors.Is; the
// returned errors carry the composite kind as context.
var (
	// ErrSizeRequired: a composite was opened under SizeRequired
	// without a declared element count.
	ErrSizeRequired = errors.New("declared size required")

	// ErrSizeExceeded: more children were requested than the declared
	// count allows.
	ErrSizeExceeded = errors.New("declared size exceeded")

	// ErrSizeUnderrun: Finish was called before the declared count was
	// fully consumed.
	ErrSizeUnderrun = errors.New("declared size not reached")

	// ErrSizeRedeclared: DeclareSize was called a second time, or
	// after the composite had already committed its length discipline.
	ErrSizeRedeclared = errors.New("size already declared")

	// ErrFinished: a child was requested, or Finish called again, on a
	// composite that has already been finished.
	ErrFinished = errors.New("composite already finished")
)
