package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"budget/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteJournal mirrors recorded transactions into a SQLite table. It is
// append-only and never feeds a ledger back.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Append implements services.Journal
func (j *SQLiteJournal) Append(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO transactions (id, recorded_at, counterparty, category, kind, amount)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID.String(),
		tx.Timestamp.UTC().Format(time.RFC3339Nano),
		tx.Counterparty,
		tx.Category,
		string(tx.Kind),
		tx.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"kind", tx.Kind,
		"amount", tx.Amount.String())

	return nil
}

// List returns every journaled transaction in insertion order.
func (j *SQLiteJournal) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, recorded_at, counterparty, category, kind, amount
		 FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			id, recordedAt, counterparty, category, kind, amount string
		)
		if err := rows.Scan(&id, &recordedAt, &counterparty, &category, &kind, &amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx, err := toTransaction(id, recordedAt, counterparty, category, kind, amount)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func toTransaction(id, recordedAt, counterparty, category, kind, amount string) (core.Transaction, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return core.Transaction{
		ID:           parsedID,
		Timestamp:    ts,
		Counterparty: counterparty,
		Amount:       amt,
		Category:     category,
		Kind:         core.Kind(kind),
	}, nil
}
