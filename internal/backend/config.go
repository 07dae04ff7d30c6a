package backend

import (
	"fmt"

	"budget/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Journal:        JournalType(appConfig.JournalBackend),
		Events:         EventsType(appConfig.EventsBackend),
		SQLiteDBPath:   appConfig.SQLiteDBPath,
		AMQPURL:        appConfig.AMQPURL,
		AMQPExchange:   appConfig.AMQPExchange,
		AMQPQueue:      appConfig.AMQPQueue,
		KafkaBrokers:   appConfig.KafkaBrokers,
		KafkaTopic:     appConfig.KafkaTopic,
		PublishTimeout: appConfig.PublishTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Journal.IsValid() {
		return fmt.Errorf("invalid journal type: %s", c.Journal)
	}
	if !c.Events.IsValid() {
		return fmt.Errorf("invalid events type: %s", c.Events)
	}

	if c.Journal == SQLiteJournal && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite journal")
	}

	switch c.Events {
	case AMQPEvents:
		if c.AMQPURL == "" {
			return fmt.Errorf("AMQP URL is required for amqp events")
		}
	case KafkaEvents:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("Kafka brokers are required for kafka events")
		}
		if c.KafkaTopic == "" {
			return fmt.Errorf("Kafka topic is required for kafka events")
		}
	}

	return nil
}
