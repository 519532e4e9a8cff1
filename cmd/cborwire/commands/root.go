// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cborwire/cmd/cborwire/cli"
)

// Root returns the cborwire command tree. With no subcommand, the
// tool defaults to decode, matching the most common "what is in this
// CBOR blob" use.
func Root() *cli.Command {
	var flags decodeFlags

	return &cli.Command{
		Name:    "cborwire",
		Summary: "Produce, inspect, validate, and hash CBOR data",
		Description: `Tools for working with RFC 8949 CBOR from the command line, built on
a deterministic writer: smallest integer and float encodings, sorted
map keys, definite lengths. Same logical data always produces
identical bytes.

With no subcommand, decodes CBOR on stdin to pretty-printed JSON on
stdout (equivalent to "cborwire decode").

All subcommands accept an optional trailing file path argument. When
provided, input is read from the file instead of stdin:
"cborwire diag request.cbor".`,
		Subcommands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			diagCommand(),
			validateCommand(),
			digestCommand(),
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("cborwire", pflag.ContinueOnError)
			flagSet.BoolVarP(&flags.compact, "compact", "c", false, "compact output (no indentation)")
			flagSet.BoolVarP(&flags.hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, flags.hexInput, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("unknown command %q\n\nRun 'cborwire --help' for usage.", remainingArgs[0])
			}
			return decodeCBOR(data, os.Stdout, flags)
		},
		Examples: []cli.Example{
			{
				Description: "Decode CBOR to pretty JSON",
				Command:     "cborwire < message.cbor",
			},
			{
				Description: "Decode hex-encoded CBOR",
				Command:     "echo 'a163...' | cborwire --hex",
			},
			{
				Description: "Encode JSON to CBOR",
				Command:     "echo '{\"action\":\"status\"}' | cborwire encode > request.cbor",
			},
			{
				Description: "Inspect CBOR structure with diagnostic notation",
				Command:     "cborwire diag token.cbor",
			},
			{
				Description: "Check a blob against the canonical profile",
				Command:     "cborwire validate message.cbor",
			},
		},
	}
}
