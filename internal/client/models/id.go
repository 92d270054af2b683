package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ID identifies users and catalog items. The server sends integer ids while
// older stored records may carry them as strings, so both decode into the
// same textual value: 7 and "7" are the same ID. Integral JSON numbers are
// normalized, so 7.0 is also 7. Strings are kept as given apart from
// surrounding whitespace, so "0012" and "7.0" stay distinct from 12 and 7.
type ID string

// IDFromInt converts a numeric server id.
func IDFromInt(v int64) ID {
	return ID(strconv.FormatInt(v, 10))
}

func (id ID) String() string {
	return string(id)
}

// Empty reports whether the id is absent. A numeric zero counts as absent.
func (id ID) Empty() bool {
	return id == "" || id == "0"
}

// canonicalInt reports whether s is the decimal form strconv produces for
// some int64: no sign other than a leading minus, no leading zeros.
func canonicalInt(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == s
}

// MarshalJSON writes canonical integer ids as JSON numbers and everything
// else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if canonicalInt(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = normalizeNumber(n)
	return nil
}

// normalizeNumber maps integral numbers within the int64 range to their
// canonical integer text. Other numbers keep their JSON spelling.
func normalizeNumber(n json.Number) ID {
	if v, err := n.Int64(); err == nil {
		return IDFromInt(v)
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return ID(n.String())
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return ID(n.String())
	}
	return IDFromInt(int64(f))
}
