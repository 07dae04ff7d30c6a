package backend

import (
	"context"
	"time"

	"budget/internal/events"
	"budget/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the mirrors the ledger service writes to. Either may be
// nil when the corresponding backend is disabled.
type Result struct {
	Journal   services.Journal
	Publisher events.Publisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	Create(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Journal JournalType
	Events  EventsType

	// SQLite specific
	SQLiteDBPath string

	// AMQP specific
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Kafka specific
	KafkaBrokers []string
	KafkaTopic   string

	PublishTimeout time.Duration
}

// JournalType selects where recorded transactions are mirrored
type JournalType string

// EventsType selects the broker transaction events are published to
type EventsType string

const (
	MemoryJournal JournalType = "memory"
	SQLiteJournal JournalType = "sqlite"

	NoEvents    EventsType = "none"
	AMQPEvents  EventsType = "amqp"
	KafkaEvents EventsType = "kafka"
)

// String implements fmt.Stringer
func (t JournalType) String() string {
	return string(t)
}

// IsValid returns true if the journal type is valid
func (t JournalType) IsValid() bool {
	switch t {
	case MemoryJournal, SQLiteJournal:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (t EventsType) String() string {
	return string(t)
}

// IsValid returns true if the events type is valid
func (t EventsType) IsValid() bool {
	switch t {
	case NoEvents, AMQPEvents, KafkaEvents:
		return true
	default:
		return false
	}
}
