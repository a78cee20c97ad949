package kafka

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher delivers audit outbox payloads to the consent audit topic.
// Records are keyed by customer ID so one customer's trail stays ordered
// within a partition.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// NewPublisher connects a franz-go producer for the audit topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Publisher{client: client, topic: topic}, nil
}

// Publish synchronously produces one payload keyed by customer ID.
func (p *Publisher) Publish(ctx context.Context, customerID string, payload []byte) error {
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(customerID),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and releases the producer.
func (p *Publisher) Close() {
	p.client.Close()
}
