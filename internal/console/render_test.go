package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"budget/internal/core"
)

func TestMoneyFormat(t *testing.T) {
	m := Money{Symbol: "$"}
	cases := map[string]string{
		"0":       "$0.00",
		"5":       "$5.00",
		"20.5":    "$20.50",
		"0.01":    "$0.01",
		"1234.56": "$1,234.56",
		"1000000": "$1,000,000.00",
		"-5.25":   "-$5.25",
		"-1234.5": "-$1,234.50",
		"2.345":   "$2.35",
	}
	for in, want := range cases {
		assert.Equal(t, want, m.Format(decimal.RequireFromString(in)), in)
	}
	assert.Equal(t, "€3.10", Money{Symbol: "€"}.Format(decimal.RequireFromString("3.1")))
}

func TestMoneyFormat_BeyondInt64(t *testing.T) {
	m := Money{Symbol: "$"}

	assert.Equal(t, "$12,345,678,901,234,567,890.12", m.Format(decimal.RequireFromString("12345678901234567890.12")))
	assert.Equal(t, "-$98,765,432,109,876,543,210.00", m.Format(decimal.RequireFromString("-98765432109876543210")))
}

func TestRenderer_Weekly(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Money{Symbol: "$"})

	r.Weekly(core.WeeklyReport{
		Count:        3,
		TotalIncome:  decimal.RequireFromString("50"),
		TotalExpense: decimal.RequireFromString("75"),
		NetChange:    decimal.RequireFromString("-25"),
		ByCategory: []core.CategoryAmount{
			{Name: "Food", Amount: decimal.RequireFromString("25")},
			{Name: "Home", Amount: decimal.RequireFromString("50")},
		},
	})

	want := "----- Weekly Summary -----\n" +
		"Total Income:  +$50.00\n" +
		"Total Expense: -$75.00\n" +
		"Net Change:    -$25.00\n" +
		"\nBy Category (Expenses only):\n" +
		"Food: $25.00\n" +
		"Home: $50.00\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderer_WeeklyEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, Money{Symbol: "$"}).Weekly(core.WeeklyReport{})

	assert.Equal(t, "----- Weekly Summary -----\nNo transactions recorded this week.\n", buf.String())
}

func TestRenderer_History(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	NewRenderer(&buf, Money{Symbol: "$"}).History([]core.Transaction{
		{Timestamp: ts, Counterparty: "Market", Category: "Food", Amount: decimal.RequireFromString("20"), Kind: core.KindExpense},
		{Timestamp: ts, Counterparty: "Job", Category: core.IncomeCategory, Amount: decimal.RequireFromString("50"), Kind: core.KindIncome},
	})

	want := "----- Transaction History -----\n" +
		"2025-06-15 | Market       | Food       | -$20.00\n" +
		"2025-06-15 | Job          | Income     | +$50.00\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderer_Recorded(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Money{Symbol: "$"})

	r.Expense(core.Transaction{Counterparty: "Market", Amount: decimal.RequireFromString("20")}, decimal.RequireFromString("80"))
	r.Income(core.Transaction{Counterparty: "Job", Amount: decimal.RequireFromString("50")}, decimal.RequireFromString("130"))

	assert.Equal(t,
		"Expense recorded: -$20.00 at Market. Remaining balance: $80.00\n"+
			"Income recorded: +$50.00 from Job. New balance: $130.00\n",
		buf.String())
}
