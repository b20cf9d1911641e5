package backup_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/myfinance/internal/backup"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/memory"
	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
)

func TestService_ExportCSV(t *testing.T) {
	store := memory.New()
	ledgerSvc := ledger.NewService(store).WithClock(func() time.Time {
		return time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	})

	_, err := ledgerSvc.Add(context.Background(), ledger.CreateParams{
		Description: "Café", Amount: 1250, Type: ledger.TypeExpense,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, backup.NewService(store).ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id;description;value;type;date;time", lines[0])
	assert.Equal(t, "1773585000000;Café;12,50;expense;15/03/2026;14:30", lines[1])
}

func TestService_ExportCSV_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, backup.NewService(memory.New()).ExportCSV(context.Background(), &buf))

	assert.Equal(t, "id;description;value;type;date;time\n", buf.String())
}

func TestService_ImportCSV_RoundTrip(t *testing.T) {
	store := memory.New()
	ledgerSvc := ledger.NewService(store).WithClock(func() time.Time {
		return time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	})

	_, err := ledgerSvc.Add(context.Background(), ledger.CreateParams{
		Description: "Padaria", Amount: 900, Type: ledger.TypeExpense,
	})
	require.NoError(t, err)

	svc := backup.NewService(store)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	// Restoring into a fresh store reproduces the ledger.
	fresh := memory.New()
	result, err := backup.NewService(fresh).ImportCSV(context.Background(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Skipped)

	txs, err := ledger.NewService(fresh).List(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Padaria", txs[0].Description)
	assert.Equal(t, int64(900), txs[0].Amount)
	assert.Equal(t, "15/03/2026", txs[0].Date)
}

func TestService_ImportCSV_SkipsDuplicatesAndBadRows(t *testing.T) {
	store := memory.New()
	ledgerSvc := ledger.NewService(store).WithClock(func() time.Time {
		return time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	})

	existing, err := ledgerSvc.Add(context.Background(), ledger.CreateParams{
		Description: "existing", Amount: 100, Type: ledger.TypeExpense,
	})
	require.NoError(t, err)

	input := strings.Join([]string{
		"id;description;value;type;date;time",
		existing.ID + ";duplicate;5,00;expense;01/03/2026;09:00",
		"tx-2;fresh;7,50;income;02/03/2026;10:00",
		"tx-3;bad amount;zero;expense;03/03/2026;11:00",
		"tx-4;bad type;5,00;transfer;04/03/2026;12:00",
		"tx-5;bad date;5,00;expense;2026-03-05;13:00",
		";missing id;5,00;expense;05/03/2026;14:00",
	}, "\n")

	result, err := backup.NewService(store).ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Skipped, 5)

	txs, err := ledgerSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "fresh", txs[1].Description)
}

func TestService_ImportCSV_NoHeader(t *testing.T) {
	store := memory.New()

	input := "tx-1;Mercado;45,00;expense;10/03/2026;18:00\n"

	result, err := backup.NewService(store).ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestService_ImportCSV_Windows1252(t *testing.T) {
	store := memory.New()

	// "Café" with a Latin-1 encoded é (0xE9).
	input := []byte("id;description;value;type;date;time\ntx-1;Caf\xe9;12,50;expense;15/03/2026;14:30\n")

	result, err := backup.NewService(store).ImportCSV(context.Background(), bytes.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)

	txs, err := ledger.NewService(store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Café", txs[0].Description)
}

func TestService_ImportCSV_Empty(t *testing.T) {
	result, err := backup.NewService(memory.New()).ImportCSV(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Empty(t, result.Skipped)
}
