// Package rest exposes the decision orchestrator over HTTP/JSON.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/application/dto"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/application/usecase"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/port"
)

// AnalyzeHandler handles decision requests.
type AnalyzeHandler struct {
	analyze   *usecase.Analyze
	validate  *validator.Validate
	logger    *slog.Logger
	decisions metric.Int64Counter
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyze *usecase.Analyze, logger *slog.Logger, meter metric.Meter) (*AnalyzeHandler, error) {
	decisions, err := meter.Int64Counter("decisions_total",
		metric.WithDescription("Number of analyze requests by decision outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating decisions counter: %w", err)
	}

	return &AnalyzeHandler{
		analyze:   analyze,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
		decisions: decisions,
	}, nil
}

// RegisterRoutes registers the analyze endpoint on the provided ServeMux.
func (h *AnalyzeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze", h.Analyze)
}

// Analyze handles POST /analyze.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
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

	record, err := h.analyze.Execute(r.Context(), req)
	if err != nil {
		var backendErr *port.BackendError
		if errors.As(err, &backendErr) {
			h.count(r.Context(), "gateway_error")
			writeError(w, http.StatusBadGateway, fmt.Sprintf("Model call failed: %v", backendErr))
			return
		}
		h.count(r.Context(), "internal_error")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.count(r.Context(), record.Decision.Status)
	writeJSON(w, http.StatusOK, record)
}

func (h *AnalyzeHandler) count(ctx context.Context, outcome string) {
	h.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
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
