// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/cborwire/cmd/cborwire/cli"
	"github.com/bureau-foundation/cborwire/lib/codec"
)

type digestFlags struct {
	hexInput  bool
	zstdInput bool
	raw       bool
}

func digestCommand() *cli.Command {
	var flags digestFlags

	return &cli.Command{
		Name:    "digest",
		Summary: "BLAKE3 hash of the canonical re-encoding",
		Description: `Read CBOR data, re-encode each item with this library's canonical
profile, and print the BLAKE3-256 digest of the canonical bytes.

Because the canonical encoding is deterministic, two documents that
carry the same logical data, regardless of map ordering, integer
widths, or length discipline in the original bytes, produce the
same digest. Use it as a content address for CBOR documents.

With --raw, the input bytes are hashed as-is without re-encoding.`,
		Usage: "cborwire digest [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("digest", pflag.ContinueOnError)
			flagSet.BoolVarP(&flags.hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			flagSet.BoolVar(&flags.zstdInput, "zstd", false, "decompress zstd input")
			flagSet.BoolVar(&flags.raw, "raw", false, "hash the input bytes without canonical re-encoding")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Content address of a CBOR document",
				Command:     "cborwire digest message.cbor",
			},
			{
				Description: "Equal data, equal digest, regardless of encoding",
				Command:     "echo 'bf0102ff' | cborwire digest --hex",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, flags.hexInput, flags.zstdInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("digest takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return digestCBOR(data, os.Stdout, flags.raw)
		},
	}
}

// digestCBOR prints the BLAKE3-256 digest of data's canonical
// re-encoding (each item of a CBOR sequence re-encoded in order), or
// of the raw bytes when raw is set.
func digestCBOR(data []byte, w io.Writer, raw bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	hasher := blake3.New()

	if raw {
		hasher.Write(data)
	} else {
		remaining := data
		for len(remaining) > 0 {
			value, rest, err := codec.DecodeFirst(remaining)
			if err != nil {
				offset := len(data) - len(remaining)
				return fmt.Errorf("decode CBOR at byte %d: %w", offset, err)
			}
			canonical, err := codec.Marshal(value)
			if err != nil {
				return fmt.Errorf("re-encode CBOR: %w", err)
			}
			hasher.Write(canonical)
			remaining = rest
		}
	}

	_, err := fmt.Fprintf(w, "%s\n", hex.EncodeToString(hasher.Sum(nil)))
	return err
}
