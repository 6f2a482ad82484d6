package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Message represents a Kafka message.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer wraps a kafka-go writer bound to a single topic. Delivery is
// best-effort: one attempt, leader ack only, no retries. The producer is
// safe for concurrent use.
type Producer struct {
	writer *kafkago.Writer
	topic  string
}

// NewProducer creates a new Producer for the configured topic.
func NewProducer(cfg Config) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: time.Second,
		RequiredAcks: kafkago.RequireOne,
		MaxAttempts:  1,
	}

	if cfg.TLS || cfg.SASLEnabled {
		transport := &kafkago.Transport{}
		if cfg.TLS {
			transport.TLS = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}
		if cfg.SASLEnabled {
			transport.SASL = resolveSASL(cfg)
		}
		w.Transport = transport
	}

	return &Producer{writer: w, topic: cfg.Topic}
}

// resolveSASL returns the appropriate SASL mechanism for the writer transport.
func resolveSASL(cfg Config) sasl.Mechanism {
	switch cfg.SASLMechanism {
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "PLAIN", "":
		return plain.Mechanism{
			Username: cfg.SASLUsername,
			Password: cfg.SASLPassword,
		}
	default:
		return nil
	}
}

// Topic returns the topic this producer writes to.
func (p *Producer) Topic() string {
	return p.topic
}

// Publish sends messages to the configured topic.
func (p *Producer) Publish(ctx context.Context, messages ...Message) error {
	kafkaMessages := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		km := kafkago.Message{
			Key:   msg.Key,
			Value: msg.Value,
		}
		for k, v := range msg.Headers {
			km.Headers = append(km.Headers, kafkago.Header{
				Key:   k,
				Value: []byte(v),
			})
		}
		kafkaMessages = append(kafkaMessages, km)
	}

	if err := p.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("closing writer for topic %s: %w", p.topic, err)
	}
	return nil
}
