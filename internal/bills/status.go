package bills

import "time"

// Status is the payment state of a bill for the month being viewed.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// StatusOf computes the state of a bill for the month of ref.
//
// A true entry in the payment map wins outright: a bill marked paid for a
// month stays Paid no matter what the dates say. Otherwise the due date
// is built from ref's year and month plus the bill's due day, and
// compared at midnight against today, the real wall-clock date, not
// ref. Browsing a past or future month therefore still reports overdue
// relative to now. That is the behavior the stored data grew up with;
// callers wanting something else must not get it silently from here.
func StatusOf(b Bill, payments PaymentMap, ref, today time.Time) Status {
	if payments[PaymentKey(b.ID, ref)] {
		return StatusPaid
	}

	due := time.Date(ref.Year(), ref.Month(), b.DueDay, 0, 0, 0, 0, today.Location())
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	if midnight.After(due) {
		return StatusOverdue
	}

	return StatusPending
}
