package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/report"
)

func tx(desc string, amount int64, typ ledger.Type, date string) ledger.Transaction {
	return ledger.Transaction{Description: desc, Amount: amount, Type: typ, Date: date}
}

func TestFilterByRange(t *testing.T) {
	txs := []ledger.Transaction{
		tx("inside", 100, ledger.TypeExpense, "15/03/2026"),
		tx("start boundary", 100, ledger.TypeExpense, "01/03/2026"),
		tx("end boundary", 100, ledger.TypeExpense, "31/03/2026"),
		tx("before", 100, ledger.TypeExpense, "28/02/2026"),
		tx("after", 100, ledger.TypeExpense, "01/04/2026"),
		tx("garbage date", 100, ledger.TypeExpense, "not-a-date"),
	}

	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 2, 0, 0, 0, time.UTC)

	got := report.FilterByRange(txs, start, end)

	require.Len(t, got, 3)
	assert.Equal(t, "inside", got[0].Description)
	assert.Equal(t, "start boundary", got[1].Description)
	assert.Equal(t, "end boundary", got[2].Description)
}

func TestFilterByRange_Idempotent(t *testing.T) {
	txs := []ledger.Transaction{
		tx("a", 100, ledger.TypeExpense, "15/03/2026"),
		tx("b", 100, ledger.TypeExpense, "20/03/2026"),
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	once := report.FilterByRange(txs, start, end)
	twice := report.FilterByRange(once, start, end)

	assert.Equal(t, once, twice)
}

func TestAggregate(t *testing.T) {
	txs := []ledger.Transaction{
		tx("Salário", 500000, ledger.TypeIncome, "01/03/2026"),
		tx("Mercado", 30000, ledger.TypeExpense, "05/03/2026"),
		tx("Mercado", 20000, ledger.TypeExpense, "12/03/2026"),
		tx("mercado", 1000, ledger.TypeExpense, "13/03/2026"),
		tx("Aluguel", 150000, ledger.TypeExpense, "05/03/2026"),
	}

	got := report.Aggregate(txs)

	assert.Equal(t, int64(500000), got.Income)
	assert.Equal(t, int64(201000), got.Expense)
	assert.Equal(t, int64(299000), got.Balance)

	// Category keys are raw descriptions; casing matters.
	assert.Equal(t, int64(50000), got.ByCategory["Mercado"])
	assert.Equal(t, int64(1000), got.ByCategory["mercado"])
	assert.Equal(t, int64(150000), got.ByCategory["Aluguel"])
	assert.NotContains(t, got.ByCategory, "Salário")
}

func TestAggregate_Empty(t *testing.T) {
	got := report.Aggregate(nil)

	assert.Zero(t, got.Income)
	assert.Zero(t, got.Expense)
	assert.Zero(t, got.Balance)
	assert.Empty(t, got.ByCategory)
}

func TestChartBuckets(t *testing.T) {
	byCategory := map[string]int64{
		"a": 600,
		"b": 500,
		"c": 400,
		"d": 300,
		"e": 200,
	}

	got := report.ChartBuckets(byCategory, 3)

	require.Len(t, got, 4)
	assert.Equal(t, report.Bucket{Name: "a", Value: 600, ColorIndex: 0}, got[0])
	assert.Equal(t, report.Bucket{Name: "b", Value: 500, ColorIndex: 1}, got[1])
	assert.Equal(t, report.Bucket{Name: "c", Value: 400, ColorIndex: 2}, got[2])
	assert.Equal(t, report.Bucket{Name: report.OthersName, Value: 500, ColorIndex: report.PaletteSize}, got[3])

	// Buckets always reconcile with the grand total.
	var sum int64
	for _, b := range got {
		sum += b.Value
	}
	assert.Equal(t, int64(2000), sum)
}

func TestChartBuckets_NoRemainder(t *testing.T) {
	byCategory := map[string]int64{
		"a": 600,
		"b": 500,
	}

	got := report.ChartBuckets(byCategory, 5)

	require.Len(t, got, 2)
	for _, b := range got {
		assert.NotEqual(t, report.OthersName, b.Name)
	}
}

func TestChartBuckets_Empty(t *testing.T) {
	assert.Empty(t, report.ChartBuckets(nil, 5))
}

func TestChartBuckets_TieBreaksByName(t *testing.T) {
	byCategory := map[string]int64{
		"beta":  100,
		"alpha": 100,
	}

	got := report.ChartBuckets(byCategory, 5)

	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Name)
	assert.Equal(t, "beta", got[1].Name)
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 25.0, report.Percent(25, 100), 0.001)
	assert.InDelta(t, 0.0, report.Percent(10, 0), 0.001)
	assert.InDelta(t, 0.0, report.Percent(0, 100), 0.001)
}

func TestRanking(t *testing.T) {
	byCategory := map[string]int64{
		"Mercado": 50000,
		"Aluguel": 150000,
	}

	got := report.Ranking(byCategory, 200000)

	require.Len(t, got, 2)
	assert.Equal(t, report.Rank{Position: 1, Name: "Aluguel", Value: 150000, Ratio: 0.75}, got[0])
	assert.Equal(t, report.Rank{Position: 2, Name: "Mercado", Value: 50000, Ratio: 0.25}, got[1])
}

func TestRanking_ZeroTotal(t *testing.T) {
	got := report.Ranking(map[string]int64{"x": 100}, 0)

	require.Len(t, got, 1)
	assert.Zero(t, got[0].Ratio)
}

func TestMonthExpenses(t *testing.T) {
	txs := []ledger.Transaction{
		tx("in month", 100, ledger.TypeExpense, "15/03/2026"),
		tx("income ignored", 100, ledger.TypeIncome, "15/03/2026"),
		tx("other month", 100, ledger.TypeExpense, "15/04/2026"),
		tx("other year", 100, ledger.TypeExpense, "15/03/2025"),
		tx("bad date", 100, ledger.TypeExpense, "xx/yy/zzzz"),
	}

	got := report.MonthExpenses(txs, time.March, 2026)

	require.Len(t, got, 1)
	assert.Equal(t, "in month", got[0].Description)
}

func TestParseDate(t *testing.T) {
	d, err := report.ParseDate("05/03/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = report.ParseDate("2026-03-05")
	assert.Error(t, err)
}
