package backend

import (
	"context"
	"errors"
	"fmt"

	"budget/internal/amqp"
	"budget/internal/events"
	"budget/internal/kafka"
	applog "budget/internal/log"
	"budget/internal/services"
	"budget/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// Create implements Factory.Create
func (f *DefaultFactory) Create(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	journal, err := f.createJournal(config)
	if err != nil {
		return nil, err
	}

	publisher := f.createPublisher(ctx, config)

	result := &Result{Journal: journal, Publisher: publisher}
	result.Cleanup = func() error {
		var errs []error
		if result.Journal != nil {
			if err := result.Journal.Close(); err != nil {
				errs = append(errs, fmt.Errorf("journal: %w", err))
			}
		}
		if result.Publisher != nil {
			if err := result.Publisher.Close(); err != nil {
				errs = append(errs, fmt.Errorf("publisher: %w", err))
			}
		}
		return errors.Join(errs...)
	}
	return result, nil
}

func (f *DefaultFactory) createJournal(config Config) (services.Journal, error) {
	switch config.Journal {
	case SQLiteJournal:
		journal, err := storage.NewSQLiteJournal(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite journal: %w", err)
		}
		f.logger.Info("Initialized SQLite journal", "db_path", config.SQLiteDBPath)
		return journal, nil
	default:
		// The ledger itself holds the only copy
		f.logger.Info("Journal disabled, ledger kept in memory only", applog.FieldBackend, config.Journal.String())
		return nil, nil
	}
}

func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) events.Publisher {
	switch config.Events {
	case AMQPEvents:
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, config.PublishTimeout)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", "error", err)
			return nil
		}
		f.logger.InfoContext(ctx, "Initialized AMQP client",
			"exchange", config.AMQPExchange,
			"queue", config.AMQPQueue)
		return client
	case KafkaEvents:
		f.logger.InfoContext(ctx, "Initialized Kafka publisher",
			"brokers", config.KafkaBrokers,
			"topic", config.KafkaTopic)
		return kafka.NewPublisher(config.KafkaBrokers, config.KafkaTopic, config.PublishTimeout)
	default:
		return nil
	}
}
