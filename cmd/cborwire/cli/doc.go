// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the cborwire tool: a
// declarative command tree with pflag flag sets, structured help
// output, typo suggestions for unknown commands and flags, and an
// ExitError convention for commands whose non-zero exit is a result
// rather than a failure (validate on non-canonical input).
package cli
