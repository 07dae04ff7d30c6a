package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeCategory is the category every income transaction carries.
const IncomeCategory = "Income"

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type (
	// Kind tells whether a transaction adds to or takes from the balance.
	Kind string

	// Transaction is one recorded income or expense event. Values are
	// copied out of the ledger, so a Transaction held by a caller never
	// aliases ledger state.
	Transaction struct {
		ID           uuid.UUID
		Timestamp    time.Time
		Counterparty string // Store for an expense, source for income
		Amount       decimal.Decimal
		Category     string
		Kind         Kind
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrEmptyText     = errors.New("empty text")
)

func (k Kind) Validate() error {
	switch k {
	case KindIncome, KindExpense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// Sign returns the display sign for the kind.
func (k Kind) Sign() string {
	if k == KindExpense {
		return "-"
	}
	return "+"
}

// ValidateText rejects blank counterparty, source and category text.
func ValidateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyText
	}
	return nil
}

func (k Kind) String() string {
	return string(k)
}

// Signed returns the amount with the direction of the transaction applied,
// i.e. the delta it caused on the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return ValidateAmount(t.Amount)
}
