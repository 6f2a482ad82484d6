// Package kafka wraps segmentio/kafka-go for publishing scored decisions.
package kafka

// Config holds Kafka connection parameters for a single topic.
type Config struct {
	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Topic   string
	Brokers []string

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool
}
