package model

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ParseDecimal parses a user-entered number. Both "," and "." are accepted
// as the decimal separator; surrounding whitespace is ignored.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return decimal.NewFromString(s)
}

// parseDecimalOr parses raw, returning fallback when raw is blank.
func parseDecimalOr(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return ParseDecimal(raw)
}

// FormatMoney renders an amount for display, e.g. "$ 1,845.33".
// Rounding happens here only; computed values keep full precision.
func FormatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$ " + humanize.FormatFloat("#,###.##", f)
}

// FormatPlain renders a value for an input field without trailing zeros.
func FormatPlain(d decimal.Decimal) string {
	return d.String()
}
