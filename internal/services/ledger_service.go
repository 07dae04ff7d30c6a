package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	"budget/internal/events"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

// Journal mirrors recorded transactions somewhere outside the ledger.
type Journal interface {
	Append(ctx context.Context, tx core.Transaction) error
	Close() error
}

// LedgerService records transactions in the ledger first, then mirrors
// them to the journal and the event publisher. Mirror failures are logged
// and never undo or fail a recorded transaction.
type LedgerService struct {
	ledger    *ledger.Ledger
	journal   Journal
	publisher events.Publisher
	logger    *applog.Logger
}

func NewLedgerService(l *ledger.Ledger, journal Journal, publisher events.Publisher, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &LedgerService{
		ledger:    l,
		journal:   journal,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentLedger),
	}
}

// RecordExpense records an expense and mirrors it.
func (s *LedgerService) RecordExpense(ctx context.Context, counterparty string, amount decimal.Decimal, category string) (core.Transaction, error) {
	r, err := s.ledger.PostExpense(counterparty, amount, category)
	if err != nil {
		s.logRejected(ctx, applog.OpRecordExpense, amount, err)
		return core.Transaction{}, err
	}
	s.mirror(ctx, applog.OpRecordExpense, r)
	return r.Transaction, nil
}

// RecordIncome records an income and mirrors it.
func (s *LedgerService) RecordIncome(ctx context.Context, source string, amount decimal.Decimal) (core.Transaction, error) {
	r, err := s.ledger.PostIncome(source, amount)
	if err != nil {
		s.logRejected(ctx, applog.OpRecordIncome, amount, err)
		return core.Transaction{}, err
	}
	s.mirror(ctx, applog.OpRecordIncome, r)
	return r.Transaction, nil
}

func (s *LedgerService) WeeklySummary(ctx context.Context, now time.Time) core.WeeklyReport {
	report := s.ledger.WeeklySummary(now)
	s.logger.DebugContext(ctx, "Weekly summary computed",
		applog.FieldOperation, applog.OpSummary,
		"count", report.Count,
		"net_change", report.NetChange.String())
	return report
}

func (s *LedgerService) FullHistory(ctx context.Context) []core.Transaction {
	history := s.ledger.FullHistory()
	s.logger.DebugContext(ctx, "History listed",
		applog.FieldOperation, applog.OpHistory,
		"count", len(history))
	return history
}

func (s *LedgerService) Balance() decimal.Decimal {
	return s.ledger.Balance()
}

func (s *LedgerService) mirror(ctx context.Context, op string, r ledger.Receipt) {
	tx, balance := r.Transaction, r.Balance
	fields := applog.NewFields().
		WithOperation(op).
		WithTransaction(tx.ID.String(), tx.Kind.String(), tx.Counterparty, tx.Category, tx.Amount.String()).
		WithBalance(balance.String())
	s.logger.InfoContext(ctx, "Transaction recorded", fields.ToSlice()...)

	if s.journal != nil {
		if err := s.journal.Append(ctx, tx); err != nil {
			s.logger.ErrorContext(ctx, "Failed to journal transaction",
				applog.NewFields().WithOperation(applog.OpJournal).
					WithError(err, applog.ErrorTypeDatabase).
					WithTransaction(tx.ID.String(), tx.Kind.String(), tx.Counterparty, tx.Category, tx.Amount.String()).
					ToSlice()...)
		}
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransaction(ctx, events.NewTransactionRecorded(tx, balance)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			applog.NewFields().WithOperation(applog.OpPublish).
				WithError(err, applog.ErrorTypeNetwork).
				WithTransaction(tx.ID.String(), tx.Kind.String(), tx.Counterparty, tx.Category, tx.Amount.String()).
				ToSlice()...)
	}
}

func (s *LedgerService) logRejected(ctx context.Context, op string, amount decimal.Decimal, err error) {
	fields := applog.NewFields().WithOperation(op).WithError(err, applog.ErrorTypeValidation)
	fields[applog.FieldAmount] = amount.String()
	s.logger.WarnContext(ctx, "Transaction rejected", fields.ToSlice()...)
}

// Close closes both journal and publisher
func (s *LedgerService) Close() error {
	var errs []error

	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}

	return nil
}
