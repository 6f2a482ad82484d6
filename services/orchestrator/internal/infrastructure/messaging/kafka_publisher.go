// Package messaging provides the decision publisher variants.
package messaging

import (
	"context"
	"log/slog"

	"github.com/KeyGoddle/Banking-models-microservices/pkg/kafka"
)

// KafkaDecisionPublisher implements port.DecisionPublisher on a pooled
// Kafka producer. The producer is shared across simultaneous requests.
type KafkaDecisionPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaDecisionPublisher creates a publisher for the given brokers and topic.
func NewKafkaDecisionPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaDecisionPublisher {
	producer := kafka.NewProducer(kafka.Config{
		Brokers: brokers,
		Topic:   topic,
	})

	return &KafkaDecisionPublisher{
		producer: producer,
		logger:   logger,
	}
}

// Publish sends the decision record keyed by its trace id. One attempt,
// at-most-once; the caller decides what to do with the error.
func (p *KafkaDecisionPublisher) Publish(ctx context.Context, traceID string, record []byte) error {
	return p.producer.Publish(ctx, kafka.Message{
		Key:   []byte(traceID),
		Value: record,
		Headers: map[string]string{
			"content-type": "application/json",
		},
	})
}

// Close closes the underlying producer.
func (p *KafkaDecisionPublisher) Close() error {
	return p.producer.Close()
}
