package observe

import (
	"context"
	"sync/atomic"
)

// EventCapture holds the event of a finished call.
//
// Event returns nil until the call completes, or if capture was not requested.
type EventCapture struct {
	ev atomic.Pointer[Event]
}

// Event returns the captured event, or nil if not yet populated.
// It is safe for concurrent use.
func (c *EventCapture) Event() *Event {
	if c == nil {
		return nil
	}
	return c.ev.Load()
}

// Store publishes ev into the capture. Only the first call has effect.
func (c *EventCapture) Store(ev Event) {
	if c == nil {
		return
	}
	c.ev.CompareAndSwap(nil, &ev)
}

type eventCaptureKey struct{}

// RecordEvent returns a derived context that requests event capture for the next
// call, plus a holder for retrieving the event once the call finished.
func RecordEvent(ctx context.Context) (context.Context, *EventCapture) {
	if ctx == nil {
		ctx = context.Background()
	}
	capture := &EventCapture{}
	return context.WithValue(ctx, eventCaptureKey{}, capture), capture
}

// EventCaptureFromContext returns the capture, if requested.
func EventCaptureFromContext(ctx context.Context) (*EventCapture, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(eventCaptureKey{}).(*EventCapture)
	return c, ok && c != nil
}
