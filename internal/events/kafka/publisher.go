package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
)

// Publisher writes sync lifecycle events to a Kafka topic for downstream
// reporting and notification consumers.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher over the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ ports.EventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishSyncEvent(ctx context.Context, event ports.SyncEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		// Key by account so one account's events stay ordered per partition.
		Key:   []byte(string(event.AccountType) + ":" + event.StripeAccountID),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
