// Package rest exposes the credit risk model over HTTP/JSON.
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

	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/application/dto"
	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/application/usecase"
)

// ScoringHandler handles scoring requests for the credit risk model.
type ScoringHandler struct {
	scoreCredit *usecase.ScoreCredit
	validate    *validator.Validate
	logger      *slog.Logger
	scored      metric.Int64Counter
}

// NewScoringHandler creates a new scoring handler.
func NewScoringHandler(scoreCredit *usecase.ScoreCredit, logger *slog.Logger, meter metric.Meter) (*ScoringHandler, error) {
	scored, err := meter.Int64Counter("scoring_requests_total",
		metric.WithDescription("Number of credit scoring requests by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scoring counter: %w", err)
	}

	return &ScoringHandler{
		scoreCredit: scoreCredit,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
		scored:      scored,
	}, nil
}

// RegisterRoutes registers the scoring endpoint on the provided ServeMux.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /score/credit", h.ScoreCredit)
}

// ScoreCredit handles POST /score/credit. The body may be either
// {"client": {...}} or a bare client profile.
func (h *ScoringHandler) ScoreCredit(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.count(r.Context(), "bad_request")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := dto.ParseClient(body)
	if err != nil {
		h.count(r.Context(), "bad_request")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(client); err != nil {
		h.count(r.Context(), "invalid")
		writeValidationError(w, err)
		return
	}

	resp := h.scoreCredit.Execute(*client)

	h.logger.Info("client profile scored",
		slog.Float64("pd_score", resp.PDScore),
		slog.String("bucket", resp.Bucket),
		slog.Int("limit_suggestion", resp.LimitSuggestion),
	)
	h.count(r.Context(), "scored")

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoringHandler) count(ctx context.Context, outcome string) {
	h.scored.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// readBody reads the JSON request body.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1 MB max
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}
	return body, nil
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
