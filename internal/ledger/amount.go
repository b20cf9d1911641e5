package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-typed amount into cents. Both decimal comma
// ("12,34") and decimal dot ("12.34") are accepted. Zero, negative and
// non-numeric input are rejected up front so nothing malformed ever
// reaches the store.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	clean := strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}

	return cents, nil
}
