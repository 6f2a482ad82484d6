// Package port defines the outbound contracts of the orchestrator.
package port

import (
	"context"
	"encoding/json"
	"fmt"
)

// ModelScorer invokes one remote scoring model: payload in, raw JSON result
// or failure out. Both model backends are variants of this single contract
// even though their payload and result shapes differ.
type ModelScorer interface {
	Name() string
	Score(ctx context.Context, payload any) (json.RawMessage, error)
}

// DecisionPublisher delivers a scored decision record to the event stream.
// Implementations must be safe for concurrent use across requests.
type DecisionPublisher interface {
	Publish(ctx context.Context, traceID string, record []byte) error
	Close() error
}

// BackendError reports a failed model call: timeout, connection failure or
// a non-success status. It aborts the whole analyze request.
type BackendError struct {
	Err   error
	Model string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("model %s call failed: %v", e.Model, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
