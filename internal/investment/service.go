package investment

import (
	"context"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
)

const keyInvestments = "investments"

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

func (s *Service) List(ctx context.Context) ([]Investment, error) {
	var list []Investment
	if err := kvstore.GetJSON(ctx, s.store, keyInvestments, &list); err != nil {
		return nil, err
	}

	return list, nil
}

// CreateParams carries user input for a new position.
type CreateParams struct {
	Name         string
	Amount       int64
	CurrentValue int64
	Type         Type
}

func (s *Service) Add(ctx context.Context, params CreateParams) (Investment, error) {
	inv := Investment{
		ID:           strconv.FormatInt(s.now().UnixMilli(), 10),
		Name:         params.Name,
		Amount:       params.Amount,
		CurrentValue: params.CurrentValue,
		Type:         params.Type,
	}
	if err := inv.Validate(); err != nil {
		return Investment{}, err
	}

	list, err := s.List(ctx)
	if err != nil {
		return Investment{}, err
	}

	list = append([]Investment{inv}, list...)
	if err := kvstore.SetJSON(ctx, s.store, keyInvestments, list); err != nil {
		return Investment{}, err
	}

	return inv, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}

	filtered := list[:0:0]

	for _, inv := range list {
		if inv.ID != id {
			filtered = append(filtered, inv)
		}
	}

	if len(filtered) == len(list) {
		return ErrNotFound
	}

	return kvstore.SetJSON(ctx, s.store, keyInvestments, filtered)
}
