package scoring_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/port"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/infrastructure/scoring"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRemoteScorer_Success(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"anomaly_score":0.42}`))
	}))
	defer server.Close()

	scorer := scoring.NewRemoteScorer("model_a", server.URL, nil, testLogger())
	assert.Equal(t, "model_a", scorer.Name())

	res, err := scorer.Score(context.Background(), map[string]any{"client": map[string]any{"age": 30}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"anomaly_score":0.42}`, string(res))
	assert.Contains(t, gotBody, "client")
}

func TestRemoteScorer_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	scorer := scoring.NewRemoteScorer("model_b", server.URL, nil, testLogger())

	_, err := scorer.Score(context.Background(), map[string]any{})
	require.Error(t, err)

	var backendErr *port.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "model_b", backendErr.Model)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestRemoteScorer_ConnectionRefused(t *testing.T) {
	// Grab a port with no listener behind it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	scorer := scoring.NewRemoteScorer("model_a", url, nil, testLogger())

	_, err := scorer.Score(context.Background(), map[string]any{})
	require.Error(t, err)

	var backendErr *port.BackendError
	assert.True(t, errors.As(err, &backendErr))
}

func TestRemoteScorer_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := &http.Client{Timeout: 50 * time.Millisecond}
	scorer := scoring.NewRemoteScorer("model_b", server.URL, client, testLogger())

	_, err := scorer.Score(context.Background(), map[string]any{})
	require.Error(t, err)

	var backendErr *port.BackendError
	assert.True(t, errors.As(err, &backendErr))
}

func TestRemoteScorer_InvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	scorer := scoring.NewRemoteScorer("model_a", server.URL, nil, testLogger())

	_, err := scorer.Score(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestRemoteScorer_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	scorer := scoring.NewRemoteScorer("model_a", server.URL, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scorer.Score(ctx, map[string]any{})
	require.Error(t, err)
}
