package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "8000" {
		t.Errorf("expected port 8000, got %s", cfg.HTTPPort)
	}
	if cfg.ModelAURL != "http://localhost:8001/score/anomaly" {
		t.Errorf("unexpected model A url: %s", cfg.ModelAURL)
	}
	if cfg.ModelBURL != "http://localhost:8002/score/credit" {
		t.Errorf("unexpected model B url: %s", cfg.ModelBURL)
	}
	if cfg.FraudReviewThreshold != 0.35 {
		t.Errorf("expected review threshold 0.35, got %v", cfg.FraudReviewThreshold)
	}
	if cfg.FraudDeclineThreshold != 0.7 {
		t.Errorf("expected decline threshold 0.7, got %v", cfg.FraudDeclineThreshold)
	}
	if cfg.PDMaxForApprove != 0.25 {
		t.Errorf("expected pd max 0.25, got %v", cfg.PDMaxForApprove)
	}
	if cfg.KafkaEnabled() {
		t.Error("kafka must be disabled by default")
	}
	if cfg.KafkaTopic != "scored_events" {
		t.Errorf("unexpected topic: %s", cfg.KafkaTopic)
	}
	if cfg.KafkaBrokers() != nil {
		t.Errorf("expected no brokers, got %v", cfg.KafkaBrokers())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FRAUD_T_REVIEW", "0.2")
	t.Setenv("FRAUD_T_DECLINE", "0.9")
	t.Setenv("PD_MAX_FOR_APPROVE", "0.4")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "decisions")
	t.Setenv("MODEL_A_URL", "http://model-a:8001/score/anomaly")

	cfg := Load()

	if cfg.FraudReviewThreshold != 0.2 {
		t.Errorf("expected 0.2, got %v", cfg.FraudReviewThreshold)
	}
	if cfg.FraudDeclineThreshold != 0.9 {
		t.Errorf("expected 0.9, got %v", cfg.FraudDeclineThreshold)
	}
	if cfg.PDMaxForApprove != 0.4 {
		t.Errorf("expected 0.4, got %v", cfg.PDMaxForApprove)
	}
	if !cfg.KafkaEnabled() {
		t.Error("kafka must be enabled when brokers are set")
	}
	brokers := cfg.KafkaBrokers()
	if len(brokers) != 2 || brokers[0] != "kafka-1:9092" || brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", brokers)
	}
	if cfg.KafkaTopic != "decisions" {
		t.Errorf("unexpected topic: %s", cfg.KafkaTopic)
	}
	if cfg.ModelAURL != "http://model-a:8001/score/anomaly" {
		t.Errorf("unexpected model A url: %s", cfg.ModelAURL)
	}
}

func TestGetEnvFloatInvalidFallsBack(t *testing.T) {
	t.Setenv("FRAUD_T_REVIEW", "not-a-number")

	cfg := Load()

	if cfg.FraudReviewThreshold != 0.35 {
		t.Errorf("expected fallback to 0.35, got %v", cfg.FraudReviewThreshold)
	}
}
