// Package kafka publishes ledger events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"budget/internal/events"
)

type Publisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

func NewPublisher(brokers []string, topic string, timeout time.Duration) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
		timeout: timeout,
	}
}

// PublishTransaction writes msg keyed by transaction id.
func (p *Publisher) PublishTransaction(ctx context.Context, msg *events.TransactionRecorded) error {
	m, err := newMessage(msg)
	if err != nil {
		return err
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, m); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func newMessage(msg *events.TransactionRecorded) (kafka.Message, error) {
	data, err := msg.ToJSON()
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal message: %w", err)
	}
	return kafka.Message{
		Key:   []byte(msg.ID.String()),
		Value: data,
		Time:  msg.RecordedAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(msg.Kind.String())},
		},
	}, nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ events.Publisher = (*Publisher)(nil)
