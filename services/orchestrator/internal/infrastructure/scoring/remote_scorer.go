// Package scoring provides the HTTP client for the remote model backends.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/port"
)

const (
	dialTimeout  = 2 * time.Second
	totalTimeout = 5 * time.Second

	// maxResponseSize bounds a model response body.
	maxResponseSize = 4 << 20
)

// RemoteScorer implements port.ModelScorer over HTTP/JSON. Both model
// backends share this call shape: POST the payload, receive a JSON result.
type RemoteScorer struct {
	name   string
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewRemoteScorer creates a scorer client for one model endpoint. A nil
// httpClient selects the default client with a 2s connect and 5s total
// timeout per call.
func NewRemoteScorer(name, url string, httpClient *http.Client, logger *slog.Logger) *RemoteScorer {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: totalTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: dialTimeout,
				}).DialContext,
				MaxIdleConnsPerHost: 16,
			},
		}
	}

	return &RemoteScorer{
		name:   name,
		url:    url,
		client: httpClient,
		logger: logger,
	}
}

// Name returns the model name.
func (s *RemoteScorer) Name() string {
	return s.name
}

// Score posts the payload to the model endpoint and returns the raw JSON
// result. A single attempt is made; any failure is a port.BackendError.
func (s *RemoteScorer) Score(ctx context.Context, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &port.BackendError{Model: s.name, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, &port.BackendError{Model: s.name, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &port.BackendError{Model: s.name, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &port.BackendError{Model: s.name, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &port.BackendError{
			Model: s.name,
			Err:   fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if !json.Valid(data) {
		return nil, &port.BackendError{Model: s.name, Err: fmt.Errorf("invalid JSON response")}
	}

	s.logger.Debug("model call completed",
		slog.String("model", s.name),
		slog.Duration("elapsed", time.Since(start)),
	)

	return json.RawMessage(data), nil
}
