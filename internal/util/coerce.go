package util

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func StringPtr(v string) *string { return &v }

// CellString coerces an arbitrary source cell to its string form. Integral
// floats render without a fractional part, so a page number parsed as 2.0
// joins location keys as "2".
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// ParsePrice reads a price out of a decoded document value. The second
// return reports whether a usable number was present; null, absent and
// malformed values all coerce to zero.
func ParsePrice(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(t, "$"))
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// FirstNonEmpty returns the first value with non-blank content.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// NormalizeColumn lowercases a header cell and strips the separators that
// vary between exports, so "Page Number", "page-number" and "page_number"
// all address the same column.
func NormalizeColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
