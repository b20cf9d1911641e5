package bills

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
)

const (
	keyBills    = "fixed_bills"
	keyPayments = "bill_payments"
)

// Service owns the bill registry and the payment map.
type Service struct {
	store kvstore.Store
	now   func() time.Time
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) List(ctx context.Context) ([]Bill, error) {
	var list []Bill
	if err := kvstore.GetJSON(ctx, s.store, keyBills, &list); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Service) Payments(ctx context.Context) (PaymentMap, error) {
	payments := make(PaymentMap)
	if err := kvstore.GetJSON(ctx, s.store, keyPayments, &payments); err != nil {
		return nil, err
	}

	return payments, nil
}

// CreateParams carries user input for a new or edited bill.
type CreateParams struct {
	Title  string
	Amount int64
	DueDay int
}

func (s *Service) Add(ctx context.Context, params CreateParams) (Bill, error) {
	b := Bill{
		ID:     strconv.FormatInt(s.now().UnixMilli(), 10),
		Title:  params.Title,
		Amount: params.Amount,
		DueDay: params.DueDay,
	}
	if err := b.Validate(); err != nil {
		return Bill{}, err
	}

	list, err := s.List(ctx)
	if err != nil {
		return Bill{}, err
	}

	list = append(list, b)
	if err := kvstore.SetJSON(ctx, s.store, keyBills, list); err != nil {
		return Bill{}, err
	}

	return b, nil
}

func (s *Service) Edit(ctx context.Context, id string, params CreateParams) (Bill, error) {
	list, err := s.List(ctx)
	if err != nil {
		return Bill{}, err
	}

	for i := range list {
		if list[i].ID != id {
			continue
		}

		updated := Bill{ID: id, Title: params.Title, Amount: params.Amount, DueDay: params.DueDay}
		if err := updated.Validate(); err != nil {
			return Bill{}, err
		}

		list[i] = updated
		if err := kvstore.SetJSON(ctx, s.store, keyBills, list); err != nil {
			return Bill{}, err
		}

		return updated, nil
	}

	return Bill{}, ErrNotFound
}

// Remove deletes a bill and cascade-deletes its payment keys, so the
// payment map never accumulates entries for bills that no longer exist.
func (s *Service) Remove(ctx context.Context, id string) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}

	filtered := list[:0:0]

	for _, b := range list {
		if b.ID != id {
			filtered = append(filtered, b)
		}
	}

	if len(filtered) == len(list) {
		return ErrNotFound
	}

	if err := kvstore.SetJSON(ctx, s.store, keyBills, filtered); err != nil {
		return err
	}

	payments, err := s.Payments(ctx)
	if err != nil {
		return err
	}

	prefix := id + "_"
	for key := range payments {
		if strings.HasPrefix(key, prefix) {
			delete(payments, key)
		}
	}

	return kvstore.SetJSON(ctx, s.store, keyPayments, payments)
}

// TogglePayment flips the paid flag of a bill for the month of ref and
// persists the whole payment map.
func (s *Service) TogglePayment(ctx context.Context, billID string, ref time.Time) (PaymentMap, error) {
	payments, err := s.Payments(ctx)
	if err != nil {
		return nil, err
	}

	key := PaymentKey(billID, ref)
	payments[key] = !payments[key]

	if err := kvstore.SetJSON(ctx, s.store, keyPayments, payments); err != nil {
		return nil, err
	}

	return payments, nil
}

// Status reports the bill's state for the month of ref, judged against
// the service clock's idea of today.
func (s *Service) Status(b Bill, payments PaymentMap, ref time.Time) Status {
	return StatusOf(b, payments, ref, s.now())
}
