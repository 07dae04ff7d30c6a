package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"budget/internal/core"
)

type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Ledger
	StartingBalance string `env:"STARTING_BALANCE"`
	CurrencySymbol  string `env:"CURRENCY_SYMBOL" envDefault:"$"`

	// Journal mirror
	JournalBackend string `env:"JOURNAL_BACKEND" envDefault:"memory"`
	SQLiteDBPath   string `env:"SQLITE_DB_PATH" envDefault:"./data/budget.db"`

	// Events
	EventsBackend  string        `env:"EVENTS_BACKEND" envDefault:"none"`
	AMQPURL        string        `env:"AMQP_URL"`
	AMQPExchange   string        `env:"AMQP_EXCHANGE" envDefault:"budget"`
	AMQPQueue      string        `env:"AMQP_QUEUE" envDefault:"transactions"`
	KafkaBrokers   []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic     string        `env:"KAFKA_TOPIC" envDefault:"budget.transactions"`
	PublishTimeout time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"5s"`
}

var (
	validLogLevels       = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats      = []string{"text", "json"}
	validJournalBackends = []string{"memory", "sqlite"}
	validEventsBackends  = []string{"none", "amqp", "kafka"}
)

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	// Starting balance may be any sign, but must be a number
	if c.StartingBalance != "" {
		if _, err := c.ParseStartingBalance(); err != nil {
			errors = append(errors, fmt.Sprintf("invalid starting balance '%s': must be a decimal number", c.StartingBalance))
		}
	}

	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}

	if !slices.Contains(validJournalBackends, c.JournalBackend) {
		errors = append(errors, fmt.Sprintf("invalid journal backend '%s': must be one of %v", c.JournalBackend, validJournalBackends))
	}
	if c.JournalBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite journal")
	}

	switch c.EventsBackend {
	case "none":
	case "amqp":
		if c.AMQPURL == "" {
			errors = append(errors, "AMQP URL is required when using amqp events backend")
		} else if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when using amqp events backend")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when using amqp events backend")
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			errors = append(errors, "at least one Kafka broker is required when using kafka events backend")
		}
		if c.KafkaTopic == "" {
			errors = append(errors, "Kafka topic cannot be empty when using kafka events backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid events backend '%s': must be one of %v", c.EventsBackend, validEventsBackends))
	}

	if c.PublishTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid publish timeout %v: must be at least 100ms", c.PublishTimeout))
	} else if c.PublishTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid publish timeout %v: must be at most 1 minute", c.PublishTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// HasStartingBalance reports whether STARTING_BALANCE was provided.
func (c *Config) HasStartingBalance() bool {
	return strings.TrimSpace(c.StartingBalance) != ""
}

// ParseStartingBalance parses the configured starting balance. Unlike
// transaction amounts it may be negative or zero.
func (c *Config) ParseStartingBalance() (decimal.Decimal, error) {
	return core.ParseBalance(c.StartingBalance)
}
