package messaging

import "context"

// NoopDecisionPublisher is the publisher wired when no broker is configured.
// Disabled publishing is a fully supported mode, not a nil check.
type NoopDecisionPublisher struct{}

// NewNoopDecisionPublisher creates a publisher that discards every record.
func NewNoopDecisionPublisher() *NoopDecisionPublisher {
	return &NoopDecisionPublisher{}
}

// Publish discards the record.
func (*NoopDecisionPublisher) Publish(context.Context, string, []byte) error {
	return nil
}

// Close is a no-op.
func (*NoopDecisionPublisher) Close() error {
	return nil
}
