package response

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrStatus is matched (via errors.Is) by the error Get returns for an Error response.
var ErrStatus = errors.New("outcome: unsuccessful status")

// Failure is implemented by Error and Exception only.
type Failure interface {
	fmt.Stringer

	// Message returns a human-readable description of the failure.
	Message() string

	failure()
}

// Error is the failure variant for calls that completed with a failure status.
//
// Body holds the raw error body; it is nil when none was received. It is not
// decoded here; use MapError with an ErrorMapper to turn it into a model.
type Error struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

func (Error) failure() {}

// Message returns "http status <code>" followed by the error body, if any.
func (e Error) Message() string {
	msg := "http status " + strconv.Itoa(e.StatusCode)
	if len(e.Body) > 0 {
		msg += ": " + string(e.Body)
	}
	return msg
}

func (e Error) String() string { return e.Message() }

// Exception is the failure variant for calls that could not complete.
type Exception struct {
	Err error
}

func (Exception) failure() {}

// Message returns the captured error's text.
func (x Exception) Message() string {
	if x.Err == nil {
		return "<nil>"
	}
	return x.Err.Error()
}

func (x Exception) String() string { return x.Message() }

// StatusError is returned by Get for Error responses.
type StatusError struct {
	Failure Error
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Failure.Message()
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}
