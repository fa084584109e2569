package validation

import (
	"math"
	"strconv"
	"strings"
)

// Number is a numeric request field that may arrive as a JSON number or as a
// numeric string (HTML forms post strings). Parsing is deferred to
// validation so a malformed value is reported against its field name.
type Number struct {
	raw     string
	present bool
}

// NewNumber returns a Number holding raw, as if decoded from JSON.
func NewNumber(raw string) Number {
	return Number{raw: strings.TrimSpace(raw), present: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*n = NewNumber(s)
	return nil
}

// Present reports whether a non-empty value was supplied.
func (n Number) Present() bool { return n.present && n.raw != "" }

// Float parses the value as a finite float.
func (n Number) Float() (float64, bool) {
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int parses the value as an integer. Integral floats such as "2.0" are accepted.
func (n Number) Int() (int, bool) {
	if i, err := strconv.Atoi(n.raw); err == nil {
		return i, true
	}
	f, ok := n.Float()
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// MustFloat returns the parsed value or 0. Call only after validation.
func (n Number) MustFloat() float64 {
	f, _ := n.Float()
	return f
}

// MustInt returns the parsed value or 0. Call only after validation.
func (n Number) MustInt() int {
	i, _ := n.Int()
	return i
}
