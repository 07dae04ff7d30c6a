// Package events defines the messages published when the ledger changes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"budget/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRecorded is published after a transaction has been appended
// to the ledger. Balance is the running balance right after it.
type TransactionRecorded struct {
	ID           uuid.UUID       `json:"id"`
	Kind         core.Kind       `json:"kind"`
	Counterparty string          `json:"counterparty"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
	RecordedAt   time.Time       `json:"recorded_at"`
}

// Publisher sends ledger events to a broker.
type Publisher interface {
	PublishTransaction(ctx context.Context, msg *TransactionRecorded) error
	Close() error
}

// NewTransactionRecorded builds the event for tx given the balance after it.
func NewTransactionRecorded(tx core.Transaction, balance decimal.Decimal) *TransactionRecorded {
	return &TransactionRecorded{
		ID:           tx.ID,
		Kind:         tx.Kind,
		Counterparty: tx.Counterparty,
		Category:     tx.Category,
		Amount:       tx.Amount,
		Balance:      balance,
		RecordedAt:   tx.Timestamp,
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedFromJSON decodes a message produced by ToJSON.
func TransactionRecordedFromJSON(data []byte) (*TransactionRecorded, error) {
	var msg TransactionRecorded
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Kind.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
