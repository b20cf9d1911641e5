package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
)

const (
	keyTransactions = "transactions"
	keyCategories   = "categories"
)

// defaultSuggestions is the built-in autocomplete list; user-added
// categories are merged on top of it.
var defaultSuggestions = []string{
	"Supermercado", "Padaria", "Restaurante", "Combustível",
	"Uber / Transporte", "Aluguel", "Conta de Luz", "Conta de Água",
	"Internet", "Salário", "Freelance", "Investimento", "Lazer",
	"Farmácia", "Academia", "Manutenção Bike",
}

// Service owns the transaction list and the user category list.
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

func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := kvstore.GetJSON(ctx, s.store, keyTransactions, &txs); err != nil {
		return nil, err
	}

	return txs, nil
}

// Add validates params, builds a transaction stamped with the current
// date and time, prepends it to the list and persists the whole list.
// IDs are millisecond timestamps; two adds inside the same millisecond
// would collide, which is accepted for a single-user ledger.
func (s *Service) Add(ctx context.Context, params CreateParams) (Transaction, error) {
	if err := params.Validate(); err != nil {
		return Transaction{}, err
	}

	txs, err := s.List(ctx)
	if err != nil {
		return Transaction{}, err
	}

	now := s.now()
	tx := Transaction{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Description: fallbackDescription(params.Description, params.Type),
		Amount:      params.Amount,
		Type:        params.Type,
		Date:        now.Format("02/01/2006"),
		Time:        now.Format("15:04"),
	}

	txs = append([]Transaction{tx}, txs...)
	if err := kvstore.SetJSON(ctx, s.store, keyTransactions, txs); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// Edit replaces the fields present in patch on the entry matching id.
// Date, time and id are never rewritten by an edit.
func (s *Service) Edit(ctx context.Context, id string, patch Patch) (Transaction, error) {
	if err := patch.Validate(); err != nil {
		return Transaction{}, err
	}

	txs, err := s.List(ctx)
	if err != nil {
		return Transaction{}, err
	}

	idx := -1

	for i := range txs {
		if txs[i].ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return Transaction{}, ErrNotFound
	}

	if patch.Description != nil {
		txs[idx].Description = fallbackDescription(*patch.Description, txs[idx].Type)
	}

	if patch.Amount != nil {
		txs[idx].Amount = *patch.Amount
	}

	if patch.Type != nil {
		txs[idx].Type = *patch.Type
	}

	if err := kvstore.SetJSON(ctx, s.store, keyTransactions, txs); err != nil {
		return Transaction{}, err
	}

	return txs[idx], nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	txs, err := s.List(ctx)
	if err != nil {
		return err
	}

	filtered := txs[:0:0]

	for _, tx := range txs {
		if tx.ID != id {
			filtered = append(filtered, tx)
		}
	}

	if len(filtered) == len(txs) {
		return ErrNotFound
	}

	return kvstore.SetJSON(ctx, s.store, keyTransactions, filtered)
}

// Clear drops the whole transaction history.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, keyTransactions); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	return nil
}

// Totals loads the list and recalculates balance, income and expense.
func (s *Service) Totals(ctx context.Context) (Totals, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return Totals{}, err
	}

	return Recalculate(txs), nil
}

// Categories returns the user-added category list.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	if err := kvstore.GetJSON(ctx, s.store, keyCategories, &cats); err != nil {
		return nil, err
	}

	return cats, nil
}

func (s *Service) AddCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCategory
	}

	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}

	cats = append(cats, name)

	return kvstore.SetJSON(ctx, s.store, keyCategories, cats)
}

// Suggest returns autocomplete candidates containing the query,
// case-insensitively, merging the built-in list with the user's own
// categories and dropping duplicates. An empty query yields nothing.
func (s *Service) Suggest(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, nil
	}

	custom, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	seen := make(map[string]struct{})

	var matches []string

	for _, name := range append(append([]string{}, defaultSuggestions...), custom...) {
		if !strings.Contains(strings.ToLower(name), q) {
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}

		matches = append(matches, name)
	}

	return matches, nil
}
