// Package backup exports the transaction ledger to CSV and restores it
// back, tolerating the charset damage spreadsheets inflict on the way.
package backup

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/myfinance/internal/encoding"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/report"
)

var header = []string{"id", "description", "value", "type", "date", "time"}

const keyTransactions = "transactions"

type Service struct {
	store kvstore.Store
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

// ExportCSV writes the whole ledger as semicolon-separated CSV with
// decimal-comma amounts, the shape Brazilian spreadsheets expect.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	var txs []ledger.Transaction
	if err := kvstore.GetJSON(ctx, s.store, keyTransactions, &txs); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, tx := range txs {
		amount := strings.ReplaceAll(decimal.New(tx.Amount, -2).StringFixed(2), ".", ",")

		row := []string{tx.ID, tx.Description, amount, string(tx.Type), tx.Date, tx.Time}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// RowError reports one rejected import row.
type RowError struct {
	Line int
	Err  error
}

// Result summarizes an import: how many rows landed in the ledger and
// which were skipped.
type Result struct {
	Imported int
	Skipped  []RowError
}

// ImportCSV appends the file's rows to the ledger. The input charset is
// auto-detected. Rows with an id already present are skipped as
// duplicates; rows that fail validation are reported in the result and
// never abort the rest of the import.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	utf8r, err := enc.UTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	cr := csv.NewReader(utf8r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return &Result{}, nil
	}

	start := 0
	if isHeader(rows[0]) {
		start = 1
	}

	var txs []ledger.Transaction
	if err := kvstore.GetJSON(ctx, s.store, keyTransactions, &txs); err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		existing[tx.ID] = struct{}{}
	}

	result := &Result{}

	for i, row := range rows[start:] {
		line := start + i + 1

		tx, err := parseRow(row)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
			continue
		}

		if _, dup := existing[tx.ID]; dup {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: fmt.Errorf("duplicate id %s", tx.ID)})
			continue
		}

		existing[tx.ID] = struct{}{}

		txs = append(txs, tx)
		result.Imported++
	}

	if result.Imported > 0 {
		if err := kvstore.SetJSON(ctx, s.store, keyTransactions, txs); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "id")
}

func parseRow(row []string) (ledger.Transaction, error) {
	if len(row) < 6 {
		return ledger.Transaction{}, fmt.Errorf("expected 6 columns, got %d", len(row))
	}

	id := strings.TrimSpace(row[0])
	if id == "" {
		return ledger.Transaction{}, fmt.Errorf("missing id")
	}

	amount, err := ledger.ParseAmount(row[2])
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("amount %q: %w", row[2], err)
	}

	typ := ledger.Type(strings.TrimSpace(row[3]))
	if typ != ledger.TypeIncome && typ != ledger.TypeExpense {
		return ledger.Transaction{}, fmt.Errorf("unknown type %q", row[3])
	}

	date := strings.TrimSpace(row[4])
	if _, err := report.ParseDate(date); err != nil {
		return ledger.Transaction{}, fmt.Errorf("date %q: %w", date, err)
	}

	return ledger.Transaction{
		ID:          id,
		Description: strings.TrimSpace(row[1]),
		Amount:      amount,
		Type:        typ,
		Date:        date,
		Time:        strings.TrimSpace(row[5]),
	}, nil
}
