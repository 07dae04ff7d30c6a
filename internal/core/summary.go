package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// WeeklyReport aggregates the transactions recorded in [Since, Until].
// ByCategory covers expenses only, in the order each category was first seen.
type WeeklyReport struct {
	Since        time.Time
	Until        time.Time
	Count        int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetChange    decimal.Decimal
	ByCategory   []CategoryAmount
}

// Empty reports whether no transaction fell inside the window.
func (r WeeklyReport) Empty() bool {
	return r.Count == 0
}
