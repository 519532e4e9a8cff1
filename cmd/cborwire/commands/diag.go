// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cborwire/cmd/cborwire/cli"
	"github.com/bureau-foundation/cborwire/lib/codec"
)

type diagFlags struct {
	hexInput  bool
	zstdInput bool
}

func diagCommand() *cli.Command {
	var flags diagFlags

	return &cli.Command{
		Name:    "diag",
		Summary: "Convert CBOR to diagnostic notation",
		Description: `Read CBOR from stdin (or a file argument) and write RFC 8949
Extended Diagnostic Notation (EDN) to stdout, one line per item.

Unlike JSON output, diagnostic notation preserves wire-level type
information: integer vs float, byte strings (h'..') vs text strings,
integer map keys, tagged values, and indefinite-length items (marked
with _).

Examples of diagnostic notation:

  {"action": "status", "count": 42}     text keys, integer value
  {1: "subject", 2: "machine"}          integer keys (label encoding)
  h'a1636b6579'                         byte string in hex
  1(1363896240.5)                       tagged epoch timestamp
  [_ 1, 2]                              indefinite-length array`,
		Usage: "cborwire diag [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			flagSet.BoolVarP(&flags.hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			flagSet.BoolVar(&flags.zstdInput, "zstd", false, "decompress zstd input")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Show diagnostic notation for a CBOR file",
				Command:     "cborwire diag < message.cbor",
			},
			{
				Description: "Encode JSON and inspect the CBOR structure",
				Command:     "echo '{\"count\":42}' | cborwire encode | cborwire diag",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, flags.hexInput, flags.zstdInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("diag takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return diagCBOR(data, os.Stdout)
		},
	}
}

// diagCBOR writes the diagnostic notation of each item in data on its
// own line. For a single item this produces one line; for CBOR
// sequences (RFC 8742) it produces one line per item.
func diagCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return fmt.Errorf("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}

	return nil
}
