package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/memory"
	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name     string
		params   ledger.CreateParams
		wantErr  error
		wantDesc string
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.CreateParams{
				Description: "Supermercado",
				Amount:      4550,
				Type:        ledger.TypeExpense,
			},
			wantDesc: "Supermercado",
		},
		{
			name: "EmptyDescriptionFallsBackForExpense",
			params: ledger.CreateParams{
				Amount: 1000,
				Type:   ledger.TypeExpense,
			},
			wantDesc: "Despesa",
		},
		{
			name: "EmptyDescriptionFallsBackForIncome",
			params: ledger.CreateParams{
				Amount: 1000,
				Type:   ledger.TypeIncome,
			},
			wantDesc: "Entrada",
		},
		{
			name: "ZeroAmount",
			params: ledger.CreateParams{
				Description: "x",
				Type:        ledger.TypeExpense,
			},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "UnknownType",
			params: ledger.CreateParams{
				Description: "x",
				Amount:      100,
				Type:        ledger.Type("transfer"),
			},
			wantErr: ledger.ErrInvalidType,
		},
	}

	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := ledger.NewService(memory.New()).WithClock(fixedClock(now))

			got, err := svc.Add(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "1773585000000", got.ID)
			assert.Equal(t, tt.wantDesc, got.Description)
			assert.Equal(t, "15/03/2026", got.Date)
			assert.Equal(t, "14:30", got.Time)
		})
	}
}

func TestService_Add_PrependsNewest(t *testing.T) {
	store := memory.New()
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	svc := ledger.NewService(store).WithClock(fixedClock(base))
	_, err := svc.Add(context.Background(), ledger.CreateParams{
		Description: "first", Amount: 100, Type: ledger.TypeExpense,
	})
	require.NoError(t, err)

	svc.WithClock(fixedClock(base.Add(time.Minute)))
	_, err = svc.Add(context.Background(), ledger.CreateParams{
		Description: "second", Amount: 200, Type: ledger.TypeIncome,
	})
	require.NoError(t, err)

	txs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "second", txs[0].Description)
	assert.Equal(t, "first", txs[1].Description)
}

func TestService_Edit(t *testing.T) {
	store := memory.New()
	svc := ledger.NewService(store).WithClock(fixedClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)))

	tx, err := svc.Add(context.Background(), ledger.CreateParams{
		Description: "Padaria", Amount: 900, Type: ledger.TypeExpense,
	})
	require.NoError(t, err)

	newAmount := int64(1200)
	got, err := svc.Edit(context.Background(), tx.ID, ledger.Patch{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got.Amount)
	assert.Equal(t, "Padaria", got.Description)
	assert.Equal(t, tx.Date, got.Date)
	assert.Equal(t, tx.Time, got.Time)

	_, err = svc.Edit(context.Background(), "missing", ledger.Patch{Amount: &newAmount})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_Remove(t *testing.T) {
	store := memory.New()
	svc := ledger.NewService(store).WithClock(fixedClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)))

	tx, err := svc.Add(context.Background(), ledger.CreateParams{
		Description: "Lazer", Amount: 3000, Type: ledger.TypeExpense,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), tx.ID))

	txs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)

	assert.ErrorIs(t, svc.Remove(context.Background(), tx.ID), ledger.ErrNotFound)
}

func TestService_Clear(t *testing.T) {
	store := memory.New()
	svc := ledger.NewService(store).WithClock(fixedClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)))

	_, err := svc.Add(context.Background(), ledger.CreateParams{
		Description: "x", Amount: 100, Type: ledger.TypeExpense,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background()))

	txs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestService_Totals(t *testing.T) {
	store := memory.New()
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := ledger.NewService(store)

	amounts := []struct {
		amount int64
		typ    ledger.Type
	}{
		{500000, ledger.TypeIncome},
		{120000, ledger.TypeExpense},
		{30000, ledger.TypeExpense},
	}

	for i, a := range amounts {
		svc.WithClock(fixedClock(base.Add(time.Duration(i) * time.Minute)))

		_, err := svc.Add(context.Background(), ledger.CreateParams{
			Description: "x", Amount: a.amount, Type: a.typ,
		})
		require.NoError(t, err)
	}

	totals, err := svc.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(500000), totals.Income)
	assert.Equal(t, int64(150000), totals.Expense)
	assert.Equal(t, int64(350000), totals.Balance)
}

func TestService_Suggest(t *testing.T) {
	store := memory.New()
	svc := ledger.NewService(store)

	require.NoError(t, svc.AddCategory(context.Background(), "Mercado do Zé"))

	type testCase struct {
		name  string
		query string
		want  []string
	}

	tests := []testCase{
		{
			name:  "EmptyQueryYieldsNothing",
			query: "",
			want:  nil,
		},
		{
			name:  "CaseInsensitiveMatch",
			query: "mercado",
			want:  []string{"Supermercado", "Mercado do Zé"},
		},
		{
			name:  "BuiltInOnly",
			query: "conta de",
			want:  []string{"Conta de Luz", "Conta de Água"},
		},
		{
			name:  "NoMatch",
			query: "zzzz",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Suggest(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Suggest_DropsDuplicates(t *testing.T) {
	store := memory.New()
	svc := ledger.NewService(store)

	require.NoError(t, svc.AddCategory(context.Background(), "Padaria"))

	got, err := svc.Suggest(context.Background(), "padaria")
	require.NoError(t, err)
	assert.Equal(t, []string{"Padaria"}, got)
}

func TestService_AddCategory_Empty(t *testing.T) {
	svc := ledger.NewService(memory.New())

	err := svc.AddCategory(context.Background(), "   ")
	assert.ErrorIs(t, err, ledger.ErrEmptyCategory)
}

func TestService_List_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := kvstore.NewMockStore(ctrl)
	store.EXPECT().
		Get(gomock.Any(), "transactions").
		Return("", errors.New("disk on fire"))

	svc := ledger.NewService(store)

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

func TestService_Add_PersistError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := kvstore.NewMockStore(ctrl)
	store.EXPECT().
		Get(gomock.Any(), "transactions").
		Return("", kvstore.ErrNotFound)
	store.EXPECT().
		Set(gomock.Any(), "transactions", gomock.Any()).
		Return(errors.New("write failed"))

	svc := ledger.NewService(store)

	_, err := svc.Add(context.Background(), ledger.CreateParams{
		Description: "x", Amount: 100, Type: ledger.TypeExpense,
	})
	assert.Error(t, err)
}
