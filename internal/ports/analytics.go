package ports

import "context"

// Event is a product analytics event.
type Event struct {
	// Name is the fixed event name, e.g. "digest_feedback".
	Name string `json:"event"`
	// UserID is the resolved caller identity the event is attributed to.
	UserID string `json:"userId"`
	// Properties carries the structured payload.
	Properties map[string]any `json:"properties,omitempty"`
}

// EventSink delivers analytics events. Delivery is best-effort: callers
// treat Capture as fire-and-forget and never fail a user-facing request
// on a sink error.
type EventSink interface {
	Capture(ctx context.Context, ev Event) error
}

// EventSinkFunc adapts a function to the EventSink interface (useful for tests).
type EventSinkFunc func(ctx context.Context, ev Event) error

// Capture implements the EventSink interface.
func (f EventSinkFunc) Capture(ctx context.Context, ev Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, ev)
}
