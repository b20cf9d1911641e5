// Package investment tracks invested positions and their profit.
package investment

import (
	"errors"
	"strings"
)

// Type classifies a position.
type Type string

const (
	TypeFixed    Type = "fixed"
	TypeVariable Type = "variable"
	TypeCrypto   Type = "crypto"
)

var (
	ErrNotFound      = errors.New("investment not found")
	ErrEmptyName     = errors.New("empty investment name")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid investment type")
)

// Investment is one position: what was put in versus what it is worth
// now. Amounts are cents.
type Investment struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
	CurrentValue int64  `json:"currentValue"`
	Type         Type   `json:"type"`
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}

	if i.Amount <= 0 || i.CurrentValue < 0 {
		return ErrInvalidAmount
	}

	switch i.Type {
	case TypeFixed, TypeVariable, TypeCrypto:
	default:
		return ErrInvalidType
	}

	return nil
}

// Profit is the absolute gain (or loss) of the position.
func (i Investment) Profit() int64 {
	return i.CurrentValue - i.Amount
}

// ProfitPercent is the gain relative to the invested amount, in percent.
// Zero-amount positions yield 0 rather than dividing by zero.
func (i Investment) ProfitPercent() float64 {
	if i.Amount <= 0 {
		return 0
	}

	return float64(i.Profit()) / float64(i.Amount) * 100
}

// PortfolioTotals sums the whole portfolio: total invested, total
// current value, and the yield (current minus invested).
func PortfolioTotals(list []Investment) (invested, current, yield int64) {
	for _, i := range list {
		invested += i.Amount
		current += i.CurrentValue
	}

	return invested, current, current - invested
}
