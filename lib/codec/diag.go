// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/bureau-foundation/cborwire/lib/cbor"
)

// Diagnose returns RFC 8949 §8 diagnostic notation for the entire
// contents of data. Multiple items (a CBOR sequence) are joined with
// ", ".
//
// Unlike JSON output, diagnostic notation preserves wire-level type
// information: integer vs float, byte string (h'..') vs text string,
// integer map keys, tagged values (n(..)), and indefinite-length
// items (marked with _).
func Diagnose(data []byte) (string, error) {
	var items []string
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := DiagnoseFirst(remaining)
		if err != nil {
			return "", err
		}
		items = append(items, notation)
		remaining = rest
	}
	return strings.Join(items, ", "), nil
}

// DiagnoseFirst returns the diagnostic notation for the first item in
// data, along with the remaining unconsumed bytes. Use this to process
// CBOR sequences one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	g := &diagnoser{data: data}
	if err := g.item(); err != nil {
		return "", nil, err
	}
	return g.out.String(), data[g.off:], nil
}

type diagnoser struct {
	data []byte
	off  int
	out  strings.Builder
}

func (g *diagnoser) failf(format string, args ...any) error {
	return fmt.Errorf("codec: diagnose at byte %d: %s", g.off, fmt.Sprintf(format, args...))
}

// atBreak reports whether the next byte is the break terminator, and
// consumes it when it is.
func (g *diagnoser) atBreak() bool {
	if g.off < len(g.data) && g.data[g.off] == cbor.SimpleBreak {
		g.off++
		return true
	}
	return false
}

func (g *diagnoser) take(n uint64) ([]byte, error) {
	if n > uint64(len(g.data)-g.off) {
		return nil, g.failf("truncated: need %d payload bytes, have %d", n, len(g.data)-g.off)
	}
	payload := g.data[g.off : g.off+int(n)]
	g.off += int(n)
	return payload, nil
}

func (g *diagnoser) item() error {
	major, info, magnitude, n, err := cbor.DecodeHeader(g.data[g.off:])
	if err != nil {
		return g.failf("%v", err)
	}
	g.off += n

	switch major {
	case cbor.MajorUnsigned:
		if info == cbor.AddIndefinite {
			return g.failf("indefinite length on integer")
		}
		g.out.WriteString(strconv.FormatUint(magnitude, 10))
		return nil

	case cbor.MajorNegative:
		if info == cbor.AddIndefinite {
			return g.failf("indefinite length on integer")
		}
		// -(magnitude+1); go through big.Int so the top magnitude does
		// not overflow int64.
		value := new(big.Int).SetUint64(magnitude)
		value.Add(value, big.NewInt(1))
		g.out.WriteString(value.Neg(value).String())
		return nil

	case cbor.MajorByteString, cbor.MajorTextString:
		return g.stringItem(major, info, magnitude)

	case cbor.MajorArray:
		return g.sequence("[", "]", info, magnitude, g.item)

	case cbor.MajorMap:
		return g.sequence("{", "}", info, magnitude, g.entry)

	case cbor.MajorTag:
		if info == cbor.AddIndefinite {
			return g.failf("indefinite length on tag")
		}
		g.out.WriteString(strconv.FormatUint(magnitude, 10))
		g.out.WriteByte('(')
		if err := g.item(); err != nil {
			return err
		}
		g.out.WriteByte(')')
		return nil

	default: // cbor.MajorSimple
		return g.simpleItem(info, magnitude)
	}
}

func (g *diagnoser) writeScalarString(major cbor.MajorType, payload []byte) {
	if major == cbor.MajorByteString {
		g.out.WriteString("h'")
		g.out.WriteString(hex.EncodeToString(payload))
		g.out.WriteByte('\'')
		return
	}
	g.out.WriteString(strconv.Quote(string(payload)))
}

func (g *diagnoser) stringItem(major cbor.MajorType, info byte, magnitude uint64) error {
	if info != cbor.AddIndefinite {
		payload, err := g.take(magnitude)
		if err != nil {
			return err
		}
		g.writeScalarString(major, payload)
		return nil
	}

	g.out.WriteString("(_ ")
	first := true
	for {
		if g.atBreak() {
			g.out.WriteByte(')')
			return nil
		}
		chunkMajor, chunkInfo, chunkLen, n, err := cbor.DecodeHeader(g.data[g.off:])
		if err != nil {
			return g.failf("%v", err)
		}
		if chunkMajor != major || chunkInfo == cbor.AddIndefinite {
			return g.failf("invalid chunk inside indefinite string")
		}
		g.off += n
		payload, err := g.take(chunkLen)
		if err != nil {
			return err
		}
		if !first {
			g.out.WriteString(", ")
		}
		first = false
		g.writeScalarString(major, payload)
	}
}

// entry renders one map entry, "key: value".
func (g *diagnoser) entry() error {
	if err := g.item(); err != nil {
		return err
	}
	g.out.WriteString(": ")
	return g.item()
}

// sequence renders a bracketed, comma-separated run of render calls:
// the body of an array or map, definite or indefinite (marked "_ ").
func (g *diagnoser) sequence(openText, closeText string, info byte, magnitude uint64, render func() error) error {
	g.out.WriteString(openText)
	if info == cbor.AddIndefinite {
		g.out.WriteString("_ ")
		first := true
		for {
			if g.atBreak() {
				g.out.WriteString(closeText)
				return nil
			}
			if g.off >= len(g.data) {
				return g.failf("truncated indefinite item")
			}
			if !first {
				g.out.WriteString(", ")
			}
			first = false
			if err := render(); err != nil {
				return err
			}
		}
	}
	for i := uint64(0); i < magnitude; i++ {
		if i > 0 {
			g.out.WriteString(", ")
		}
		if err := render(); err != nil {
			return err
		}
	}
	g.out.WriteString(closeText)
	return nil
}

func (g *diagnoser) simpleItem(info byte, magnitude uint64) error {
	switch info {
	case 20:
		g.out.WriteString("false")
	case 21:
		g.out.WriteString("true")
	case 22:
		g.out.WriteString("null")
	case 23:
		g.out.WriteString("undefined")
	case cbor.AddUint16:
		g.out.WriteString(formatDiagFloat(float64(cbor.Float16Frombits(uint16(magnitude)))))
	case cbor.AddUint32:
		g.out.WriteString(formatDiagFloat(float64(math.Float32frombits(uint32(magnitude)))))
	case cbor.AddUint64:
		g.out.WriteString(formatDiagFloat(math.Float64frombits(magnitude)))
	case cbor.AddIndefinite:
		return g.failf("unexpected break")
	default:
		g.out.WriteString("simple(")
		g.out.WriteString(strconv.FormatUint(magnitude, 10))
		g.out.WriteByte(')')
	}
	return nil
}

func formatDiagFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	text := strconv.FormatFloat(f, 'g', -1, 64)
	// Keep a visible fraction so floats stay distinguishable from
	// integers in the notation.
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}
