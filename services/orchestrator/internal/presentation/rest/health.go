package rest

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides the health and service-info endpoints.
type HealthHandler struct {
	logger    *slog.Logger
	checks    map[string]string
	service   string
	startTime time.Time
}

// NewHealthHandler creates a new health check handler. The checks map names
// the configured collaborators reported by the readiness probe.
func NewHealthHandler(service string, checks map[string]string, logger *slog.Logger) *HealthHandler {
	if checks == nil {
		checks = map[string]string{}
	}
	return &HealthHandler{
		logger:    logger,
		checks:    checks,
		service:   service,
		startTime: time.Now(),
	}
}

// InfoResponse is the JSON response for the service-info endpoint.
type InfoResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Checks  map[string]string `json:"checks"`
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Uptime  string            `json:"uptime"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Root handles GET / and reports the service identity.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{Service: h.service, Status: "ok"})
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles readiness probe requests. Model backends are called lazily
// per request, so readiness reports their configured endpoints only.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status:  "ready",
		Service: h.service,
		Uptime:  time.Since(h.startTime).String(),
		Checks:  h.checks,
	})
}
