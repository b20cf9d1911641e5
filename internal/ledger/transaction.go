package ledger

import (
	"errors"
	"strings"
)

// Type represents the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category name")
)

// Transaction is a single ledger entry. The whole transaction list is the
// unit of persistence: it is read and written wholesale on every change.
//
// Amount is stored in cents. Date and Time keep the display formats the
// data has always been stored in ("DD/MM/YYYY" and "HH:MM").
type Transaction struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      int64  `json:"value"`
	Type        Type   `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// CreateParams carries user input for a new transaction.
type CreateParams struct {
	Description string
	Amount      int64
	Type        Type
}

func (p CreateParams) Validate() error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}

	switch p.Type {
	case TypeIncome, TypeExpense:
	default:
		return ErrInvalidType
	}

	return nil
}

// Patch holds the fields of an edit; nil fields are left untouched.
type Patch struct {
	Description *string
	Amount      *int64
	Type        *Type
}

func (p Patch) Validate() error {
	if p.Amount != nil && *p.Amount <= 0 {
		return ErrInvalidAmount
	}

	if p.Type != nil {
		switch *p.Type {
		case TypeIncome, TypeExpense:
		default:
			return ErrInvalidType
		}
	}

	return nil
}

// Totals is the single-pass summary of a transaction list.
type Totals struct {
	Balance int64
	Income  int64
	Expense int64
}

// Recalculate walks the list once and accumulates income and expense
// separately; the balance is income minus expense.
func Recalculate(txs []Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		if tx.Type == TypeIncome {
			t.Income += tx.Amount
			t.Balance += tx.Amount
		} else {
			t.Expense += tx.Amount
			t.Balance -= tx.Amount
		}
	}

	return t
}

// fallbackDescription fills an empty description the way the app always
// has: generic labels per direction.
func fallbackDescription(desc string, typ Type) string {
	if strings.TrimSpace(desc) != "" {
		return desc
	}

	if typ == TypeIncome {
		return "Entrada"
	}

	return "Despesa"
}
