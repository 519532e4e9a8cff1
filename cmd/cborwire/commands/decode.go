// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cborwire/cmd/cborwire/cli"
	"github.com/bureau-foundation/cborwire/lib/codec"
	"github.com/bureau-foundation/cborwire/lib/labels"
)

type decodeFlags struct {
	compact    bool
	hexInput   bool
	zstdInput  bool
	labelsPath string
}

func decodeCommand() *cli.Command {
	var flags decodeFlags

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert CBOR to JSON",
		Description: `Read CBOR from stdin (or a file argument) and write pretty-printed
JSON to stdout, one document per item of a CBOR sequence.

Byte strings render as base64, bignums as exact JSON numbers,
timestamps as RFC 3339 strings, and decimal fractions as exact plain
numbers. With --labels, integer map keys listed in the table are
restored to their field names.

With --hex, input is treated as hex-encoded CBOR (whitespace
ignored). With --zstd, the input is decompressed first.`,
		Usage: "cborwire decode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.BoolVarP(&flags.compact, "compact", "c", false, "compact output (no indentation)")
			flagSet.BoolVarP(&flags.hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			flagSet.BoolVar(&flags.zstdInput, "zstd", false, "decompress zstd input")
			flagSet.StringVar(&flags.labelsPath, "labels", "", "YAML field label table (name: integer)")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Decode a CBOR file to JSON",
				Command:     "cborwire decode message.cbor",
			},
			{
				Description: "Decode hex-encoded CBOR",
				Command:     "echo 'a1636b657963766174' | cborwire decode --hex",
			},
			{
				Description: "Restore field names from integer keys",
				Command:     "cborwire decode --labels fields.yaml request.cbor",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, flags.hexInput, flags.zstdInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return decodeCBOR(data, os.Stdout, flags)
		},
	}
}

// decodeCBOR decodes CBOR data (a single item or a CBOR sequence) and
// writes one JSON document per item to w.
func decodeCBOR(data []byte, w io.Writer, flags decodeFlags) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	opts := codec.Options{}
	if flags.labelsPath != "" {
		table, err := labels.LoadFile(flags.labelsPath)
		if err != nil {
			return err
		}
		opts.Labels = table
	}

	remaining := data
	for len(remaining) > 0 {
		value, rest, err := codec.DecodeFirstWith(remaining, opts)
		if err != nil {
			offset := len(data) - len(remaining)
			return fmt.Errorf("decode CBOR at byte %d: %w", offset, err)
		}

		var rendered []byte
		if flags.compact {
			rendered, err = json.Marshal(value)
		} else {
			rendered, err = json.MarshalIndent(value, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", rendered); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
