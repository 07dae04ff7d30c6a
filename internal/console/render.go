package console

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"budget/internal/core"
)

const dateLayout = "2006-01-02"

// Money formats decimal amounts as currency text.
type Money struct {
	Symbol string
}

// Format renders d with two places and thousands separators; the minus sign
// goes before the symbol.
func (m Money) Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs().Round(core.AmountPlaces)
	whole := abs.Truncate(0)
	cents := abs.Sub(whole).Shift(core.AmountPlaces).IntPart()
	return fmt.Sprintf("%s%s%s.%02d", sign, m.Symbol, humanize.BigComma(whole.BigInt()), cents)
}

// Renderer writes ledger results as text.
type Renderer struct {
	out   io.Writer
	money Money
}

func NewRenderer(out io.Writer, money Money) *Renderer {
	return &Renderer{out: out, money: money}
}

func (r *Renderer) Expense(tx core.Transaction, balance decimal.Decimal) {
	fmt.Fprintf(r.out, "Expense recorded: -%s at %s. Remaining balance: %s\n",
		r.money.Format(tx.Amount), tx.Counterparty, r.money.Format(balance))
}

func (r *Renderer) Income(tx core.Transaction, balance decimal.Decimal) {
	fmt.Fprintf(r.out, "Income recorded: +%s from %s. New balance: %s\n",
		r.money.Format(tx.Amount), tx.Counterparty, r.money.Format(balance))
}

func (r *Renderer) Weekly(report core.WeeklyReport) {
	fmt.Fprintln(r.out, "----- Weekly Summary -----")
	if report.Empty() {
		fmt.Fprintln(r.out, "No transactions recorded this week.")
		return
	}

	fmt.Fprintf(r.out, "Total Income:  +%s\n", r.money.Format(report.TotalIncome))
	fmt.Fprintf(r.out, "Total Expense: -%s\n", r.money.Format(report.TotalExpense))
	fmt.Fprintf(r.out, "Net Change:    %s\n", r.money.Format(report.NetChange))

	fmt.Fprintln(r.out, "\nBy Category (Expenses only):")
	for _, c := range report.ByCategory {
		fmt.Fprintf(r.out, "%s: %s\n", c.Name, r.money.Format(c.Amount))
	}
}

func (r *Renderer) History(history []core.Transaction) {
	fmt.Fprintln(r.out, "----- Transaction History -----")
	for _, tx := range history {
		fmt.Fprintf(r.out, "%s | %-12s | %-10s | %s%s\n",
			tx.Timestamp.Format(dateLayout), tx.Counterparty, tx.Category, tx.Kind.Sign(), r.money.Format(tx.Amount))
	}
}
