// Package classify turns finished client calls into response.Response values.
//
// A call either completed with a status code (an Exchange) or failed before a
// status was seen (an error). Of and FromError handle those two cases; FromHTTP
// handles both for net/http.
package classify

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aponysus/outcome/response"
)

// ErrNilError is wrapped when FromError is given a nil error.
var ErrNilError = errors.New("outcome: nil error classified as exception")

// StatusClassifier decides whether a transport status code is a success.
type StatusClassifier interface {
	IsSuccess(statusCode int) bool
}

// StatusClassifierFunc adapts a function to StatusClassifier.
type StatusClassifierFunc func(statusCode int) bool

func (f StatusClassifierFunc) IsSuccess(statusCode int) bool { return f(statusCode) }

// Exchange is a completed transport exchange.
//
// Body is the decoded payload and is only used on success. ErrorBody is the raw
// body of a failed exchange, nil if there was none.
type Exchange[T any] struct {
	StatusCode int
	Header     http.Header
	Body       T
	ErrorBody  []byte
}

// Of classifies a completed exchange. A nil classifier means HTTPClassifier{}.
func Of[T any](c StatusClassifier, ex Exchange[T]) response.Response[T] {
	if c == nil {
		c = HTTPClassifier{}
	}
	if c.IsSuccess(ex.StatusCode) {
		return response.NewSuccess(ex.Body, ex.StatusCode, ex.Header)
	}
	return response.NewError[T](ex.StatusCode, ex.ErrorBody, ex.Header)
}

// FromError classifies a call that failed without a status. The returned
// Exception holds err itself, so errors.Is and == comparisons keep working.
func FromError[T any](err error) response.Response[T] {
	if err == nil {
		return response.NewException[T](ErrNilError)
	}
	return response.NewException[T](err)
}

// DecodeError reports a successful exchange whose body could not be decoded.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("outcome: decode body of status %d: %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PanicError reports a panic raised by caller-supplied code during classification.
type PanicError struct {
	Component string
	Value     any
	Stack     []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("outcome: panic in %s: %v", e.Component, e.Value)
}
