// Package rest exposes the anomaly scoring model over HTTP/JSON.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/KeyGoddle/Banking-models-microservices/services/anomaly-service/internal/application/dto"
	"github.com/KeyGoddle/Banking-models-microservices/services/anomaly-service/internal/application/usecase"
)

// ScoringHandler handles scoring requests for the anomaly model.
type ScoringHandler struct {
	scoreAnomaly *usecase.ScoreAnomaly
	validate     *validator.Validate
	logger       *slog.Logger
	scored       metric.Int64Counter
}

// NewScoringHandler creates a new scoring handler.
func NewScoringHandler(scoreAnomaly *usecase.ScoreAnomaly, logger *slog.Logger, meter metric.Meter) (*ScoringHandler, error) {
	scored, err := meter.Int64Counter("scoring_requests_total",
		metric.WithDescription("Number of anomaly scoring requests by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scoring counter: %w", err)
	}

	return &ScoringHandler{
		scoreAnomaly: scoreAnomaly,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       logger,
		scored:       scored,
	}, nil
}

// RegisterRoutes registers the scoring endpoint on the provided ServeMux.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /score/anomaly", h.ScoreAnomaly)
}

// ScoreAnomaly handles POST /score/anomaly.
func (h *ScoringHandler) ScoreAnomaly(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreAnomalyRequest
	if err := readJSON(r, &req); err != nil {
		h.count(r.Context(), "bad_request")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.count(r.Context(), "invalid")
		writeValidationError(w, err)
		return
	}

	resp := h.scoreAnomaly.Execute(req)

	h.logger.Info("transaction pattern scored",
		slog.Float64("anomaly_score", resp.AnomalyScore),
		slog.Int("transactions", len(req.Transactions)),
	)
	h.count(r.Context(), "scored")

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoringHandler) count(ctx context.Context, outcome string) {
	h.scored.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// readJSON reads and unmarshals a JSON request body into the provided value.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1 MB max
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("request body is empty")
	}
	return json.Unmarshal(body, v)
}

// writeJSON marshals the value as JSON and writes it to the response.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, map[string]string{"error": msg})
}

// writeValidationError writes a 400 response with per-field violation detail.
func writeValidationError(w http.ResponseWriter, err error) {
	fields := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Namespace()] = fe.Tag()
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}
