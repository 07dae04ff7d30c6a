// Package ledger keeps the running balance and the append-only transaction
// history for a single run. It does no I/O: callers supply the clock and
// render whatever it returns.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"budget/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Window is the length of the weekly summary window.
const Window = 7 * 24 * time.Hour

// Ledger owns a balance and the ordered history that produced it.
type Ledger struct {
	mu      sync.Mutex
	balance decimal.Decimal
	history []core.Transaction
	now     func() time.Time
	newID   func() uuid.UUID
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the source of transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator sets the source of transaction IDs.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(l *Ledger) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// New creates a ledger opened with the given starting balance, which may
// be negative or zero.
func New(starting decimal.Decimal, opts ...Option) *Ledger {
	l := &Ledger{
		balance: starting,
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Receipt is a recorded transaction and the balance right after it.
type Receipt struct {
	Transaction core.Transaction
	Balance     decimal.Decimal
}

// RecordExpense takes amount off the balance and appends an expense.
func (l *Ledger) RecordExpense(counterparty string, amount decimal.Decimal, category string) (core.Transaction, error) {
	r, err := l.PostExpense(counterparty, amount, category)
	return r.Transaction, err
}

// RecordIncome adds amount to the balance and appends an income. The
// category is always core.IncomeCategory.
func (l *Ledger) RecordIncome(source string, amount decimal.Decimal) (core.Transaction, error) {
	r, err := l.PostIncome(source, amount)
	return r.Transaction, err
}

// PostExpense is RecordExpense that also reports the resulting balance.
func (l *Ledger) PostExpense(counterparty string, amount decimal.Decimal, category string) (Receipt, error) {
	if err := core.ValidateAmount(amount); err != nil {
		return Receipt{}, fmt.Errorf("record expense: %w", err)
	}
	return l.record(core.KindExpense, counterparty, amount, category), nil
}

// PostIncome is RecordIncome that also reports the resulting balance.
func (l *Ledger) PostIncome(source string, amount decimal.Decimal) (Receipt, error) {
	if err := core.ValidateAmount(amount); err != nil {
		return Receipt{}, fmt.Errorf("record income: %w", err)
	}
	return l.record(core.KindIncome, source, amount, core.IncomeCategory), nil
}

func (l *Ledger) record(kind core.Kind, counterparty string, amount decimal.Decimal, category string) Receipt {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now()
	if n := len(l.history); n > 0 && ts.Before(l.history[n-1].Timestamp) {
		// Never let a clock step back reorder history.
		ts = l.history[n-1].Timestamp
	}

	tx := core.Transaction{
		ID:           l.newID(),
		Timestamp:    ts,
		Counterparty: counterparty,
		Amount:       amount,
		Category:     category,
		Kind:         kind,
	}
	l.balance = l.balance.Add(tx.Signed())
	l.history = append(l.history, tx)
	return Receipt{Transaction: tx, Balance: l.balance}
}

// Balance returns the current running balance.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

// FullHistory returns a copy of every transaction in the order recorded.
func (l *Ledger) FullHistory() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.history...)
}

// WeeklySummary aggregates the transactions whose timestamp falls in
// [now-7d, now]. A transaction exactly seven days old is included.
func (l *Ledger) WeeklySummary(now time.Time) core.WeeklyReport {
	report := core.WeeklyReport{
		Since:        now.Add(-Window),
		Until:        now,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		NetChange:    decimal.Zero,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	index := make(map[string]int)
	for _, tx := range l.history {
		if tx.Timestamp.Before(report.Since) || tx.Timestamp.After(report.Until) {
			continue
		}
		report.Count++
		switch tx.Kind {
		case core.KindIncome:
			report.TotalIncome = report.TotalIncome.Add(tx.Amount)
		case core.KindExpense:
			report.TotalExpense = report.TotalExpense.Add(tx.Amount)
			i, ok := index[tx.Category]
			if !ok {
				i = len(report.ByCategory)
				index[tx.Category] = i
				report.ByCategory = append(report.ByCategory, core.CategoryAmount{Name: tx.Category, Amount: decimal.Zero})
			}
			report.ByCategory[i].Amount = report.ByCategory[i].Amount.Add(tx.Amount)
		}
	}
	report.NetChange = report.TotalIncome.Sub(report.TotalExpense)
	return report
}
