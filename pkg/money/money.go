package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts an on-screen or ledger amount into a decimal. It tolerates
// quote wrapping, a leading currency symbol and thousands separators, so
// `"$1,234.50"` and `1,234.50` parse to the same value.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.Trim(cleaned, `"`)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Equal is exact equality. Payment amounts are verified with no tolerance:
// a cent off is a mismatch.
func Equal(a, b decimal.Decimal) bool {
	return a.Equal(b)
}
