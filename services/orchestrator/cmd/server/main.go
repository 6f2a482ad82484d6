package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/KeyGoddle/Banking-models-microservices/pkg/observability"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/application/usecase"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/port"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/service"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/infrastructure/config"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/infrastructure/messaging"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/infrastructure/scoring"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/presentation/rest"
)

const serviceName = "orchestrator"

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.InitLogger(serviceName, observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting orchestrator",
		slog.String("model_a_url", cfg.ModelAURL),
		slog.String("model_b_url", cfg.ModelBURL),
	)

	meter, metricsHandler, err := observability.InitMetrics(serviceName)
	if err != nil {
		logger.Error("failed to init metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The publisher is an explicit optional collaborator: a configured broker
	// selects Kafka, otherwise the no-op variant.
	var publisher port.DecisionPublisher
	if cfg.KafkaEnabled() {
		kafkaPublisher := messaging.NewKafkaDecisionPublisher(cfg.KafkaBrokers(), cfg.KafkaTopic, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("decision publishing enabled",
			slog.String("brokers", cfg.KafkaBootstrapServers),
			slog.String("topic", cfg.KafkaTopic),
		)
	} else {
		publisher = messaging.NewNoopDecisionPublisher()
		logger.Info("decision publishing disabled, no broker configured")
	}

	fraudModel := scoring.NewRemoteScorer("model_a", cfg.ModelAURL, nil, logger)
	riskModel := scoring.NewRemoteScorer("model_b", cfg.ModelBURL, nil, logger)

	policy := service.NewDecisionPolicy(service.Thresholds{
		FraudReview:     cfg.FraudReviewThreshold,
		FraudDecline:    cfg.FraudDeclineThreshold,
		PDMaxForApprove: cfg.PDMaxForApprove,
	})

	analyze := usecase.NewAnalyze(fraudModel, riskModel, policy, publisher, logger)

	analyzeHandler, err := rest.NewAnalyzeHandler(analyze, logger, meter)
	if err != nil {
		logger.Error("failed to init analyze handler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	healthHandler := rest.NewHealthHandler(serviceName, map[string]string{
		"model_a": cfg.ModelAURL,
		"model_b": cfg.ModelBURL,
	}, logger)

	mux := http.NewServeMux()
	analyzeHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", slog.String("error", err.Error()))
	}

	logger.Info("shutting down orchestrator")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("orchestrator stopped")
}
