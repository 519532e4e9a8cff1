// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math/big"
	"strings"
)

// Decimal is an exact decimal fraction: Mantissa * 10^(-Scale). It
// encodes as a decimal-fraction tag (tag 4) and is what tag 4 items
// decode into. Unlike a float it carries no binary rounding: 0.1 is
// exactly Decimal{Mantissa: 1, Scale: 1}.
type Decimal struct {
	Mantissa *big.Int
	Scale    int32
}

// String renders the exact decimal value in plain notation, e.g.
// "1500", "2.5", "-0.015".
func (d Decimal) String() string {
	if d.Mantissa == nil || d.Mantissa.Sign() == 0 {
		return "0"
	}

	digits := new(big.Int).Abs(d.Mantissa).String()
	var b strings.Builder
	if d.Mantissa.Sign() < 0 {
		b.WriteByte('-')
	}

	scale := int(d.Scale)
	switch {
	case scale <= 0:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", -scale))
	case scale >= len(digits):
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", scale-len(digits)))
		b.WriteString(digits)
	default:
		b.WriteString(digits[:len(digits)-scale])
		b.WriteByte('.')
		b.WriteString(digits[len(digits)-scale:])
	}
	return b.String()
}

// MarshalJSON renders the decimal as a plain JSON number, preserving
// exact precision (no float round trip).
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}
