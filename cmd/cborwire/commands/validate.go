// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cborwire/cmd/cborwire/cli"
	"github.com/bureau-foundation/cborwire/lib/codec"
)

type validateFlags struct {
	hexInput  bool
	zstdInput bool
}

func validateCommand() *cli.Command {
	var flags validateFlags

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether CBOR uses the canonical compact profile",
		Description: `Read CBOR data and verify it matches this library's canonical
profile: smallest integer headers, floats folded to integers and
narrowed to their smallest exact width, definite lengths, and map
keys sorted bytewise. Exits 0 with "valid" when every item is
canonical, exits 1 with a diagnostic message when not.

Validation works by decoding the input and re-encoding it with this
library's deterministic encoder, then comparing the bytes. This
catches unsorted map keys, non-minimal headers, indefinite-length
items, and oversized float widths.

Each item of a CBOR sequence is validated independently.`,
		Usage: "cborwire validate [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flagSet.BoolVarP(&flags.hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			flagSet.BoolVar(&flags.zstdInput, "zstd", false, "decompress zstd input")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Validate CBOR from a pipeline",
				Command:     "echo '{\"count\":42}' | cborwire encode | cborwire validate",
			},
			{
				Description: "Validate a CBOR file",
				Command:     "cborwire validate message.cbor",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, flags.hexInput, flags.zstdInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("validate takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return validateCBOR(data, os.Stdout)
		},
	}
}

// validateCBOR checks each item in data against the canonical
// profile. It prints "valid" and returns nil when everything matches;
// otherwise it prints a diagnostic and returns ExitError(1).
func validateCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	index := 0
	remaining := data
	for len(remaining) > 0 {
		offset := len(data) - len(remaining)
		value, rest, err := codec.DecodeFirst(remaining)
		if err != nil {
			fmt.Fprintf(w, "invalid: item %d at byte %d: %v\n", index, offset, err)
			return &cli.ExitError{Code: 1}
		}

		canonical, err := codec.Marshal(value)
		if err != nil {
			fmt.Fprintf(w, "invalid: item %d at byte %d cannot be re-encoded: %v\n", index, offset, err)
			return &cli.ExitError{Code: 1}
		}

		original := remaining[:len(remaining)-len(rest)]
		if !bytes.Equal(original, canonical) {
			fmt.Fprintf(w, "not canonical: item %d at byte %d differs from its canonical re-encoding (%d vs %d bytes)\n",
				index, offset, len(original), len(canonical))
			return &cli.ExitError{Code: 1}
		}

		remaining = rest
		index++
	}

	fmt.Fprintln(w, "valid")
	return nil
}
