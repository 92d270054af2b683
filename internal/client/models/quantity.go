package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity is a line item count. Decoding accepts numbers and numeric
// strings. Fractions are truncated; anything non-numeric or outside the
// int64 range becomes 0.
type Quantity int64

func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			*q = 0
			return nil
		}
	} else {
		raw = string(b)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*q = 0
		return nil
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		*q = 0
		return nil
	}
	*q = Quantity(f)
	return nil
}
