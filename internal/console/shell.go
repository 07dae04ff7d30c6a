// Package console is the interactive text front end of the ledger. It owns
// every prompt and every line of output; the ledger only sees validated
// values.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

// Ledger is what the shell needs from the ledger service.
type Ledger interface {
	RecordExpense(ctx context.Context, counterparty string, amount decimal.Decimal, category string) (core.Transaction, error)
	RecordIncome(ctx context.Context, source string, amount decimal.Decimal) (core.Transaction, error)
	WeeklySummary(ctx context.Context, now time.Time) core.WeeklyReport
	FullHistory(ctx context.Context) []core.Transaction
	Balance() decimal.Decimal
}

// Prompter reads answers line by line. Input is scanned on its own
// goroutine so a blocked read never keeps Ask from seeing cancellation.
// Close stops that goroutine once its current read returns.
type Prompter struct {
	out       io.Writer
	lines     chan string
	done      chan struct{}
	closeOnce sync.Once
	err       error // set before lines is closed
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{out: out, lines: make(chan string), done: make(chan struct{})}
	go p.scan(in)
	return p
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.lines)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		select {
		case p.lines <- sc.Text():
		case <-p.done:
			return
		}
	}
	p.err = sc.Err()
}

// Close releases the scanning goroutine. Ask returns io.EOF afterwards.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// Ask prints prompt and returns the next trimmed line. It returns io.EOF
// once input is exhausted.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", io.EOF
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", p.err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// AskText asks until a non-blank answer is given.
func (p *Prompter) AskText(ctx context.Context, prompt string) (string, error) {
	for {
		s, err := p.Ask(ctx, prompt)
		if err != nil {
			return "", err
		}
		if err := core.ValidateText(s); errors.Is(err, core.ErrEmptyText) {
			fmt.Fprintln(p.out, "Value cannot be empty, try again.")
			continue
		}
		return s, nil
	}
}

// AskAmount asks until a positive amount is given.
func (p *Prompter) AskAmount(ctx context.Context, prompt string) (decimal.Decimal, error) {
	return p.askDecimal(ctx, prompt, core.ParseAmount, "Invalid amount, enter a positive number.")
}

// AskBalance asks until a number of any sign is given.
func (p *Prompter) AskBalance(ctx context.Context, prompt string) (decimal.Decimal, error) {
	return p.askDecimal(ctx, prompt, core.ParseBalance, "Invalid balance, enter a number.")
}

func (p *Prompter) askDecimal(ctx context.Context, prompt string, parse func(string) (decimal.Decimal, error), complaint string) (decimal.Decimal, error) {
	for {
		s, err := p.Ask(ctx, prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := parse(s)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(p.out, complaint)
	}
}

// Shell runs the menu loop against a ledger.
type Shell struct {
	prompt *Prompter
	ledger Ledger
	render *Renderer
	out    io.Writer
	now    func() time.Time
}

// Option configures a Shell.
type Option func(*Shell)

// WithClock sets the reference time used for the weekly summary.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) {
		if now != nil {
			s.now = now
		}
	}
}

func NewShell(prompt *Prompter, ledger Ledger, out io.Writer, money Money, opts ...Option) *Shell {
	s := &Shell{
		prompt: prompt,
		ledger: ledger,
		render: NewRenderer(out, money),
		out:    out,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user quits or input ends. It returns the
// context error if ctx is cancelled first.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, "\nMenu:")
		fmt.Fprintln(s.out, "1) Add Expense")
		fmt.Fprintln(s.out, "2) Add Income")
		fmt.Fprintln(s.out, "3) Weekly Summary")
		fmt.Fprintln(s.out, "4) Show History")
		fmt.Fprintln(s.out, "q) Quit")

		choice, err := s.prompt.Ask(ctx, "> ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.ToLower(choice) {
		case "1":
			err = s.addExpense(ctx)
		case "2":
			err = s.addIncome(ctx)
		case "3":
			s.render.Weekly(s.ledger.WeeklySummary(ctx, s.now()))
		case "4":
			s.render.History(s.ledger.FullHistory(ctx))
		case "q":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (s *Shell) addExpense(ctx context.Context) error {
	store, err := s.prompt.AskText(ctx, "Store: ")
	if err != nil {
		return err
	}
	amount, err := s.prompt.AskAmount(ctx, "Amount: ")
	if err != nil {
		return err
	}
	category, err := s.prompt.AskText(ctx, "Category: ")
	if err != nil {
		return err
	}

	tx, err := s.ledger.RecordExpense(ctx, store, amount, category)
	if err != nil {
		return s.rejected(err)
	}
	s.render.Expense(tx, s.ledger.Balance())
	return nil
}

func (s *Shell) addIncome(ctx context.Context) error {
	amount, err := s.prompt.AskAmount(ctx, "Income Amount: ")
	if err != nil {
		return err
	}
	source, err := s.prompt.AskText(ctx, "Source: ")
	if err != nil {
		return err
	}

	tx, err := s.ledger.RecordIncome(ctx, source, amount)
	if err != nil {
		return s.rejected(err)
	}
	s.render.Income(tx, s.ledger.Balance())
	return nil
}

func (s *Shell) rejected(err error) error {
	if errors.Is(err, core.ErrInvalidAmount) {
		fmt.Fprintln(s.out, "Invalid amount, nothing recorded.")
		return nil
	}
	return err
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
