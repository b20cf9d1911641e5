package investment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/myfinance/internal/investment"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/memory"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name    string
		params  investment.CreateParams
		wantErr error
	}

	tests := []testCase{
		{
			name: "Success",
			params: investment.CreateParams{
				Name: "Tesouro Direto", Amount: 100000, CurrentValue: 103000, Type: investment.TypeFixed,
			},
		},
		{
			name: "EmptyName",
			params: investment.CreateParams{
				Name: " ", Amount: 100, CurrentValue: 100, Type: investment.TypeFixed,
			},
			wantErr: investment.ErrEmptyName,
		},
		{
			name: "ZeroAmount",
			params: investment.CreateParams{
				Name: "x", CurrentValue: 100, Type: investment.TypeFixed,
			},
			wantErr: investment.ErrInvalidAmount,
		},
		{
			name: "NegativeCurrentValue",
			params: investment.CreateParams{
				Name: "x", Amount: 100, CurrentValue: -1, Type: investment.TypeFixed,
			},
			wantErr: investment.ErrInvalidAmount,
		},
		{
			name: "UnknownType",
			params: investment.CreateParams{
				Name: "x", Amount: 100, CurrentValue: 100, Type: investment.Type("bonds"),
			},
			wantErr: investment.ErrInvalidType,
		},
	}

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := investment.NewService(memory.New()).WithClock(fixedClock(now))

			got, err := svc.Add(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Add_PrependsNewest(t *testing.T) {
	store := memory.New()
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	svc := investment.NewService(store).WithClock(fixedClock(base))
	_, err := svc.Add(context.Background(), investment.CreateParams{
		Name: "first", Amount: 100, CurrentValue: 100, Type: investment.TypeFixed,
	})
	require.NoError(t, err)

	svc.WithClock(fixedClock(base.Add(time.Minute)))
	_, err = svc.Add(context.Background(), investment.CreateParams{
		Name: "second", Amount: 200, CurrentValue: 200, Type: investment.TypeCrypto,
	})
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "first", list[1].Name)
}

func TestService_Remove(t *testing.T) {
	svc := investment.NewService(memory.New()).WithClock(fixedClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)))

	inv, err := svc.Add(context.Background(), investment.CreateParams{
		Name: "x", Amount: 100, CurrentValue: 100, Type: investment.TypeVariable,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), inv.ID))
	assert.ErrorIs(t, svc.Remove(context.Background(), inv.ID), investment.ErrNotFound)
}

func TestInvestment_Profit(t *testing.T) {
	inv := investment.Investment{Amount: 100000, CurrentValue: 112000}

	assert.Equal(t, int64(12000), inv.Profit())
	assert.InDelta(t, 12.0, inv.ProfitPercent(), 0.001)

	loss := investment.Investment{Amount: 100000, CurrentValue: 80000}
	assert.Equal(t, int64(-20000), loss.Profit())
	assert.InDelta(t, -20.0, loss.ProfitPercent(), 0.001)
}

func TestPortfolioTotals(t *testing.T) {
	list := []investment.Investment{
		{Amount: 100000, CurrentValue: 110000},
		{Amount: 50000, CurrentValue: 45000},
	}

	invested, current, yield := investment.PortfolioTotals(list)
	assert.Equal(t, int64(150000), invested)
	assert.Equal(t, int64(155000), current)
	assert.Equal(t, int64(5000), yield)

	invested, current, yield = investment.PortfolioTotals(nil)
	assert.Zero(t, invested)
	assert.Zero(t, current)
	assert.Zero(t, yield)
}
