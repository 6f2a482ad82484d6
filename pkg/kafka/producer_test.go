package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
		Topic:   "scored_events",
	}

	p := NewProducer(cfg)
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if p.Topic() != "scored_events" {
		t.Errorf("expected topic scored_events, got %s", p.Topic())
	}
	if p.writer == nil {
		t.Fatal("expected writer to be initialized")
	}
	if p.writer.MaxAttempts != 1 {
		t.Errorf("expected single delivery attempt, got %d", p.writer.MaxAttempts)
	}
}

func TestNewProducerPlainTransport(t *testing.T) {
	cfg := Config{
		Brokers: []string{"kafka:9092"},
		Topic:   "scored_events",
	}

	p := NewProducer(cfg)
	if p.writer.Transport != nil {
		t.Error("expected default transport when TLS and SASL are disabled")
	}
}

func TestNewProducerSASLTransport(t *testing.T) {
	cfg := Config{
		Brokers:       []string{"kafka:9092"},
		Topic:         "scored_events",
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "PLAIN",
		SASLUsername:  "svc",
		SASLPassword:  "secret",
	}

	p := NewProducer(cfg)
	if p.writer.Transport == nil {
		t.Fatal("expected custom transport when SASL is enabled")
	}
}

func TestResolveSASL(t *testing.T) {
	tests := []struct {
		name      string
		mechanism string
		wantNil   bool
	}{
		{name: "plain", mechanism: "PLAIN"},
		{name: "empty defaults to plain", mechanism: ""},
		{name: "scram sha256", mechanism: "SCRAM-SHA-256"},
		{name: "scram sha512", mechanism: "SCRAM-SHA-512"},
		{name: "unknown", mechanism: "GSSAPI", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resolveSASL(Config{
				SASLMechanism: tt.mechanism,
				SASLUsername:  "svc",
				SASLPassword:  "secret",
			})
			if tt.wantNil && m != nil {
				t.Errorf("expected nil mechanism for %q", tt.mechanism)
			}
			if !tt.wantNil && m == nil {
				t.Errorf("expected mechanism for %q", tt.mechanism)
			}
		})
	}
}

func TestMessageConstruction(t *testing.T) {
	msg := Message{
		Key:   []byte("trace-123"),
		Value: []byte(`{"decision":{"status":"approve"}}`),
		Headers: map[string]string{
			"content-type": "application/json",
			"trace-id":     "abc-def-ghi",
		},
	}

	if string(msg.Key) != "trace-123" {
		t.Errorf("expected key trace-123, got %s", string(msg.Key))
	}
	if len(msg.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(msg.Headers))
	}
	if msg.Headers["trace-id"] != "abc-def-ghi" {
		t.Errorf("unexpected trace-id header: %s", msg.Headers["trace-id"])
	}
}
