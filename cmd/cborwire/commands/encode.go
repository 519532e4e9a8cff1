// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/cborwire/cmd/cborwire/cli"
	"github.com/bureau-foundation/cborwire/lib/cbor"
	"github.com/bureau-foundation/cborwire/lib/codec"
	"github.com/bureau-foundation/cborwire/lib/labels"
)

type encodeFlags struct {
	yamlInput  bool
	indefinite bool
	zstdOutput bool
	labelsPath string
}

func encodeCommand() *cli.Command {
	var flags encodeFlags

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON or YAML to CBOR",
		Description: `Read JSON from stdin (or a file argument) and write the equivalent
CBOR to stdout. The input may contain comments and trailing commas
(JSONC); with --yaml it is parsed as YAML instead.

Numbers are preserved exactly: integers stay integers, values beyond
64 bits become bignums, and floats take the smallest width that
round-trips. Map keys are sorted bytewise, so the same input always
produces identical bytes.

With --labels, field names listed in the YAML label table are written
as integer map keys instead of text. With --indefinite, arrays and
maps use indefinite-length encoding terminated by break bytes. With
--zstd, the output is compressed as a single zstd frame.

The output is binary. Pipe to "cborwire diag" or "xxd" to inspect.`,
		Usage: "cborwire encode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			flagSet.BoolVar(&flags.yamlInput, "yaml", false, "parse input as YAML instead of JSON")
			flagSet.BoolVar(&flags.indefinite, "indefinite", false, "use indefinite-length arrays and maps")
			flagSet.BoolVar(&flags.zstdOutput, "zstd", false, "compress output with zstd")
			flagSet.StringVar(&flags.labelsPath, "labels", "", "YAML field label table (name: integer)")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Encode JSON to CBOR",
				Command:     "echo '{\"action\":\"status\"}' | cborwire encode > request.cbor",
			},
			{
				Description: "Encode with integer field labels",
				Command:     "cborwire encode --labels fields.yaml input.json > output.cbor",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     "echo '{\"count\":42}' | cborwire encode | cborwire decode",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if !flags.zstdOutput && term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("refusing to write binary CBOR to a terminal; redirect to a file or pipe to another command")
			}
			return encodeInput(data, os.Stdout, flags)
		},
	}
}

// encodeInput converts one JSON or YAML document to CBOR and writes
// it to w.
func encodeInput(data []byte, w io.Writer, flags encodeFlags) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected %s data", inputKind(flags))
	}

	value, err := parseInput(data, flags.yamlInput)
	if err != nil {
		return err
	}

	opts := codec.Options{}
	if flags.indefinite {
		opts.Policy = cbor.SizeAlways
	}
	if flags.labelsPath != "" {
		table, err := labels.LoadFile(flags.labelsPath)
		if err != nil {
			return err
		}
		opts.Labels = table
	}

	encoded, err := codec.MarshalWith(value, opts)
	if err != nil {
		return fmt.Errorf("encode CBOR: %w", err)
	}

	if flags.zstdOutput {
		if encoded, err = compressOutput(encoded); err != nil {
			return err
		}
	}

	_, err = w.Write(encoded)
	return err
}

func inputKind(flags encodeFlags) string {
	if flags.yamlInput {
		return "YAML"
	}
	return "JSON"
}

// parseInput decodes the textual input to a dynamic value with exact
// numbers. JSON input tolerates comments and trailing commas.
func parseInput(data []byte, yamlInput bool) (any, error) {
	if yamlInput {
		var value any
		if err := yaml.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		return value, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return convertNumbers(value), nil
}

// convertNumbers recursively walks a JSON-decoded value and converts
// json.Number to int64, *big.Int, or float64, in that order of
// preference, so integer-valued input never degrades to a float.
func convertNumbers(v any) any {
	switch value := v.(type) {
	case json.Number:
		if integer, err := value.Int64(); err == nil {
			return integer
		}
		if bignum, ok := new(big.Int).SetString(value.String(), 10); ok {
			return bignum
		}
		if float, err := value.Float64(); err == nil {
			return float
		}
		// json.Number that is neither an integer nor a float should
		// not happen with valid JSON, but fail loudly if it does.
		panic(fmt.Sprintf("json.Number %q is neither integer nor float", value.String()))

	case map[string]any:
		for key, element := range value {
			value[key] = convertNumbers(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = convertNumbers(element)
		}
		return value

	default:
		return v
	}
}
