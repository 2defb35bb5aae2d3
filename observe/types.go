// Package observe defines hooks for watching outcomes as they are delivered to
// callbacks.
package observe

import (
	"context"
	"time"

	"github.com/aponysus/outcome/response"
)

// Reasons passed to Observer.OnDropped.
const (
	// DropCanceled means the delivery context was done before the callback ran.
	DropCanceled = "canceled"
	// DropRejected means the dispatcher refused the callback.
	DropRejected = "rejected"
)

// Event describes a single classified call.
type Event struct {
	// Name is the logical call name, e.g. "GET /posters".
	Name      string
	RequestID string

	Kind       response.Kind
	StatusCode int

	// Err is the failure as an error: a *response.StatusError for Error outcomes,
	// the captured error for Exception outcomes, nil for Success.
	Err error

	Start time.Time
	End   time.Time
}

// Duration returns End - Start, or zero if either bound is unset.
func (e Event) Duration() time.Duration {
	if e.Start.IsZero() || e.End.IsZero() {
		return 0
	}
	return e.End.Sub(e.Start)
}

// Observer receives outcome lifecycle callbacks.
//
// Implementations must be safe for concurrent use.
type Observer interface {
	// OnDelivered is called after the outcome was handed to the caller.
	OnDelivered(ctx context.Context, ev Event)

	// OnDropped is called when an outcome was produced but never delivered.
	OnDropped(ctx context.Context, ev Event, reason string)
}

// EventOf builds the Event for r.
func EventOf[T any](name, requestID string, r response.Response[T], start, end time.Time) Event {
	ev := Event{
		Name:      name,
		RequestID: requestID,
		Kind:      r.Kind(),
		Start:     start,
		End:       end,
	}
	switch r.Kind() {
	case response.KindSuccess:
		s, _ := r.AsSuccess()
		ev.StatusCode = s.StatusCode
	case response.KindError:
		e, _ := r.AsError()
		ev.StatusCode = e.StatusCode
		ev.Err = &response.StatusError{Failure: e}
	default:
		x, _ := r.AsException()
		ev.Err = x.Err
	}
	return ev
}
