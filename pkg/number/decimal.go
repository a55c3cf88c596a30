package number

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Placeholder shown for missing numbers
const Placeholder = "—"

// Decimal parse string, zero on failure
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(v))
	return d
}

// Coerce any json value into a decimal, zero on failure
func Coerce(v interface{}) decimal.Decimal {
	d, ok := parse(v)
	if !ok {
		return decimal.Zero
	}

	return d
}

// NullCoerce like Coerce but keeps null and garbage as invalid
func NullCoerce(v interface{}) decimal.NullDecimal {
	d, ok := parse(v)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

func parse(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return n, true
	case json.Number:
		return parseString(n.String())
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case bool:
		return decimal.Zero, false
	case string:
		return parseString(n)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, false
	}

	return parseString(s)
}

func parseString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// Display format with thousands separators, placeholder for invalid values
func Display(d decimal.NullDecimal) string {
	if !d.Valid {
		return Placeholder
	}

	s := d.Decimal.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	return sign + b.String() + frac
}
