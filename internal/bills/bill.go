// Package bills tracks recurring monthly obligations and their per-month
// payment state.
package bills

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("bill not found")
	ErrEmptyTitle    = errors.New("empty bill title")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")
)

// Bill is a recurring monthly obligation identified by its due day of
// month rather than an absolute date.
//
// DueDay is only range-checked against 1..31, not against the length of
// any particular month. A bill due on the 31st of a 30-day month gets a
// due date that rolls over into the next month, which time.Date
// normalizes the same way the stored data always behaved.
type Bill struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount int64  `json:"value"`
	DueDay int    `json:"dueDay"`
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}

	if b.Amount <= 0 {
		return ErrInvalidAmount
	}

	if b.DueDay < 1 || b.DueDay > 31 {
		return ErrInvalidDueDay
	}

	return nil
}

// PaymentMap records which bills were paid in which calendar month.
type PaymentMap map[string]bool

// PaymentKey identifies one bill's payment flag for one calendar month.
// The month index is zero-based: that is how every existing payment map
// was written, and the keys must keep matching stored data.
func PaymentKey(billID string, ref time.Time) string {
	return fmt.Sprintf("%s_%d_%d", billID, int(ref.Month())-1, ref.Year())
}

// MonthlyTotal sums the amounts of all registered bills.
func MonthlyTotal(list []Bill) int64 {
	var total int64
	for _, b := range list {
		total += b.Amount
	}

	return total
}

// NextDue picks the bill due soonest: the earliest due day on or after
// today's day of month, or, when every due day has already passed, the
// earliest due day overall (first bill of next month). Returns nil for
// an empty registry.
func NextDue(list []Bill, today time.Time) *Bill {
	if len(list) == 0 {
		return nil
	}

	byDay := make([]Bill, len(list))
	copy(byDay, list)
	sort.SliceStable(byDay, func(i, j int) bool { return byDay[i].DueDay < byDay[j].DueDay })

	day := today.Day()
	for i := range byDay {
		if byDay[i].DueDay >= day {
			return &byDay[i]
		}
	}

	return &byDay[0]
}
