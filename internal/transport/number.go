package transport

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// OptFloat accepts a JSON number, a numeric string or a query/form value.
// Present is set whenever a non-empty value arrived, Valid only when it
// parsed to a finite number.
type OptFloat struct {
	Value   float64
	Present bool
	Valid   bool
}

func (f *OptFloat) UnmarshalParam(s string) error {
	f.parse(s)
	return nil
}

func (f *OptFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.Value, f.Present, f.Valid = n, true, true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		f.Present = true
		return nil
	}
	f.parse(s)
	return nil
}

func (f *OptFloat) parse(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	f.Present = true
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	f.Value, f.Valid = v, true
}

// Ptr returns nil when absent and NaN when present but unparseable, which
// the catalog rejects as an invalid price.
func (f OptFloat) Ptr() *float64 {
	if !f.Present {
		return nil
	}
	v := f.Value
	if !f.Valid {
		v = math.NaN()
	}
	return &v
}

// OptInt is the integer counterpart of OptFloat. It reads the leading
// integer of a string ("12abc" is 12, "1.5" is 1). A JSON number 0 counts
// as absent, a string "0" does not.
type OptInt struct {
	Value   int
	Present bool
	Valid   bool
}

func (i *OptInt) UnmarshalParam(s string) error {
	i.parse(s)
	return nil
}

func (i *OptInt) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		if n == 0 {
			return nil
		}
		i.Present = true
		if t := math.Trunc(n); math.Abs(t) <= math.MaxInt32 {
			i.Value, i.Valid = int(t), true
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		i.Present = true
		return nil
	}
	i.parse(s)
	return nil
}

func (i *OptInt) parse(s string) {
	if s == "" {
		return
	}
	i.Present = true

	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return
	}
	i.Value, i.Valid = v, true
}

// Ptr returns nil when absent. Unparseable ids resolve to 0, which is never
// assigned to a product.
func (i OptInt) Ptr() *int {
	if !i.Present {
		return nil
	}
	v := i.Value
	if !i.Valid {
		v = 0
	}
	return &v
}
