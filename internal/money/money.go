// Package money provides the decimal amount type shared by the storefront
// server and client. Amounts travel as plain JSON numbers.
package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount. The zero value is 0.
//
// Decoding is lenient: a JSON number, a numeric string ("89.99") or null are
// accepted, anything else decodes to zero instead of failing. Stored cart
// records written by older clients carry prices as strings.
type Money struct {
	decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{decimal.Zero}

func New(d decimal.Decimal) Money {
	return Money{d}
}

func FromFloat(f float64) Money {
	return Money{decimal.NewFromFloat(f)}
}

// Parse converts s into an amount, coercing anything non-numeric to zero.
func Parse(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero
	}
	return Money{d}
}

// Times multiplies the amount by an integer quantity.
func (m Money) Times(q int64) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(q))}
}

func (m Money) Plus(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// Format renders the amount with two decimal places.
func (m Money) Format() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = Zero
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*m = Zero
			return nil
		}
		*m = Parse(s)
		return nil
	}

	*m = Parse(string(b))
	return nil
}
