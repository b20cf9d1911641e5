package view

import (
	"context"
	"fmt"
	"time"
)

const storeTimeout = 5 * time.Second

// FormatAmount formats an amount stored as cents into a human-readable string.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("R$ %.2f", float64(cents)/100.0)
}

// MaskedAmount stands in for every value when amounts are hidden.
const MaskedAmount = "R$ ••••"

// Amount renders cents, honoring the hide-amounts preference.
func Amount(cents int64, hide bool) string {
	if hide {
		return MaskedAmount
	}

	return FormatAmount(cents)
}

// MonthLabel renders a month for navigation headers, e.g. "March 2026".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
