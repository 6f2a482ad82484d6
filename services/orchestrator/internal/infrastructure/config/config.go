package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the orchestrator.
type Config struct {
	HTTPPort string

	ModelAURL string
	ModelBURL string

	FraudReviewThreshold  float64
	FraudDeclineThreshold float64
	PDMaxForApprove       float64

	// KafkaBootstrapServers empty disables publishing entirely.
	KafkaBootstrapServers string
	KafkaTopic            string

	Environment string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8000"),
		ModelAURL:             getEnv("MODEL_A_URL", "http://localhost:8001/score/anomaly"),
		ModelBURL:             getEnv("MODEL_B_URL", "http://localhost:8002/score/credit"),
		FraudReviewThreshold:  getEnvFloat("FRAUD_T_REVIEW", 0.35),
		FraudDeclineThreshold: getEnvFloat("FRAUD_T_DECLINE", 0.7),
		PDMaxForApprove:       getEnvFloat("PD_MAX_FOR_APPROVE", 0.25),
		KafkaBootstrapServers: getEnv("KAFKA_BOOTSTRAP_SERVERS", ""),
		KafkaTopic:            getEnv("KAFKA_TOPIC", "scored_events"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
	}
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// KafkaEnabled reports whether a broker is configured.
func (c *Config) KafkaEnabled() bool {
	return c.KafkaBootstrapServers != ""
}

// KafkaBrokers returns the bootstrap servers as a list.
func (c *Config) KafkaBrokers() []string {
	if c.KafkaBootstrapServers == "" {
		return nil
	}
	return strings.Split(c.KafkaBootstrapServers, ",")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
