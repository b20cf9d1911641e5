// Package report contains the pure aggregation functions behind the
// summary and dashboard views: date-range filtering, category grouping,
// chart bucketing and ranking.
package report

import (
	"sort"
	"time"

	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
)

// OthersName is the label of the synthetic remainder bucket.
const OthersName = "Outros"

// PaletteSize is the number of distinct chart colors; bucket color
// indexes cycle through it. The Outros bucket uses the index one past
// the palette, a fixed neutral slot.
const PaletteSize = 6

// ParseDate parses the ledger's "DD/MM/YYYY" date strings. Malformed
// dates are an error so callers can fail closed and drop the record
// instead of aggregating garbage.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("02/01/2006", s)
}

// FilterByRange keeps the transactions dated inside [start, end],
// inclusive: start is floored to midnight and end ceiled to the last
// instant of its day. Records whose date fails to parse are excluded;
// one bad row must never take down the report.
func FilterByRange(txs []ledger.Transaction, start, end time.Time) []ledger.Transaction {
	floor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	ceil := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)

	var out []ledger.Transaction

	for _, tx := range txs {
		d, err := ParseDate(tx.Date)
		if err != nil {
			continue
		}

		if d.Before(floor) || d.After(ceil) {
			continue
		}

		out = append(out, tx)
	}

	return out
}

// Summary is the outcome of one aggregation pass.
type Summary struct {
	Income     int64
	Expense    int64
	Balance    int64
	ByCategory map[string]int64
}

// Aggregate walks the list once. Income and expense accumulate
// separately; per-category sums accumulate only for expenses, keyed by
// the raw description (no normalization; "Mercado" and "mercado" are
// different categories).
func Aggregate(txs []ledger.Transaction) Summary {
	s := Summary{ByCategory: make(map[string]int64)}

	for _, tx := range txs {
		if tx.Type == ledger.TypeIncome {
			s.Income += tx.Amount
			continue
		}

		s.Expense += tx.Amount
		s.ByCategory[tx.Description] += tx.Amount
	}

	s.Balance = s.Income - s.Expense

	return s
}

// Bucket is one slice of the expense chart.
type Bucket struct {
	Name       string `json:"name"`
	Value      int64  `json:"value"`
	ColorIndex int    `json:"colorIndex"`
}

// ChartBuckets sorts categories descending by value, keeps the first
// topN, and appends an Outros bucket holding the remainder when it is
// positive. An empty category map yields an empty bucket list.
func ChartBuckets(byCategory map[string]int64, topN int) []Bucket {
	groups := sortedGroups(byCategory)

	var total int64
	for _, g := range groups {
		total += g.Value
	}

	if len(groups) > topN {
		groups = groups[:topN]
	}

	buckets := make([]Bucket, 0, len(groups)+1)

	var topTotal int64

	for i, g := range groups {
		topTotal += g.Value

		buckets = append(buckets, Bucket{
			Name:       g.Name,
			Value:      g.Value,
			ColorIndex: i % PaletteSize,
		})
	}

	if others := total - topTotal; others > 0 {
		buckets = append(buckets, Bucket{Name: OthersName, Value: others, ColorIndex: PaletteSize})
	}

	return buckets
}

// Percent returns value as a percentage of total, with 0 standing in
// when the total is zero so displays never see NaN or Inf.
func Percent(value, total int64) float64 {
	if total == 0 {
		return 0
	}

	return float64(value) / float64(total) * 100
}

// Rank is one row of the category ranking list.
type Rank struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Value    int64   `json:"value"`
	Ratio    float64 `json:"ratio"`
}

// Ranking orders categories descending by value with 1-indexed
// positions; Ratio is the share of totalExpense in [0,1], for progress
// bars.
func Ranking(byCategory map[string]int64, totalExpense int64) []Rank {
	groups := sortedGroups(byCategory)
	ranks := make([]Rank, len(groups))

	for i, g := range groups {
		ranks[i] = Rank{
			Position: i + 1,
			Name:     g.Name,
			Value:    g.Value,
			Ratio:    Percent(g.Value, totalExpense) / 100,
		}
	}

	return ranks
}

// MonthExpenses filters the list down to the expenses of one calendar
// month, the slice the dashboard charts.
func MonthExpenses(txs []ledger.Transaction, month time.Month, year int) []ledger.Transaction {
	var out []ledger.Transaction

	for _, tx := range txs {
		if tx.Type != ledger.TypeExpense {
			continue
		}

		d, err := ParseDate(tx.Date)
		if err != nil {
			continue
		}

		if d.Month() == month && d.Year() == year {
			out = append(out, tx)
		}
	}

	return out
}

type group struct {
	Name  string
	Value int64
}

// sortedGroups flattens the category map and sorts descending by value,
// breaking ties by name so the ordering is stable across runs.
func sortedGroups(byCategory map[string]int64) []group {
	groups := make([]group, 0, len(byCategory))
	for name, value := range byCategory {
		groups = append(groups, group{Name: name, Value: value})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Value != groups[j].Value {
			return groups[i].Value > groups[j].Value
		}

		return groups[i].Name < groups[j].Name
	})

	return groups
}
