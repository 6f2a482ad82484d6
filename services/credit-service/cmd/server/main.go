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
	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/application/usecase"
	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/domain/service"
	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/infrastructure/config"
	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/presentation/rest"
)

const serviceName = "model_b"

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.InitLogger(serviceName, observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting credit risk service")

	meter, metricsHandler, err := observability.InitMetrics(serviceName)
	if err != nil {
		logger.Error("failed to init metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	scorer := service.NewCreditRiskScorer()
	scoreCredit := usecase.NewScoreCredit(scorer)

	scoringHandler, err := rest.NewScoringHandler(scoreCredit, logger, meter)
	if err != nil {
		logger.Error("failed to init scoring handler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	healthHandler := rest.NewHealthHandler(serviceName, logger)

	mux := http.NewServeMux()
	scoringHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
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

	logger.Info("shutting down credit risk service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("credit risk service stopped")
}
