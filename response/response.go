// Package response defines Response, the classified outcome of a single client
// call, and the combinators used to inspect, transform and merge it.
//
// A Response is always exactly one of three variants:
//
//   - Success: the call completed and the transport reported a successful status.
//   - Error: the call completed but the transport reported a failure status.
//   - Exception: the call could not complete (network, timeout, decoding, ...).
//
// Error and Exception are the two Failure variants.
package response

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnclassified is carried by the Exception of a zero Response and of
// NewException(nil).
var ErrUnclassified = errors.New("outcome: response was never classified")

// Kind identifies the variant held by a Response.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindException
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindException:
		return "exception"
	default:
		return "unknown"
	}
}

// Success is the payload of a successful call.
//
// Header is shared with every copy of the Response and must be treated as read-only.
type Success[T any] struct {
	Data       T
	StatusCode int
	Header     http.Header
}

// Response is the classified outcome of one completed call.
//
// The zero value is an Exception carrying ErrUnclassified. Responses are immutable
// and safe for concurrent read-only use.
type Response[T any] struct {
	success   *Success[T]
	failure   *Error
	exception *Exception
}

// NewSuccess returns a Success response.
func NewSuccess[T any](data T, statusCode int, header http.Header) Response[T] {
	return Response[T]{success: &Success[T]{Data: data, StatusCode: statusCode, Header: header}}
}

// NewError returns an Error response. A nil body means no error body was received.
func NewError[T any](statusCode int, body []byte, header http.Header) Response[T] {
	return Response[T]{failure: &Error{StatusCode: statusCode, Body: body, Header: header}}
}

// NewException returns an Exception response wrapping err as-is.
func NewException[T any](err error) Response[T] {
	if err == nil {
		err = ErrUnclassified
	}
	return Response[T]{exception: &Exception{Err: err}}
}

// WrapSuccess wraps an existing Success value.
func WrapSuccess[T any](s Success[T]) Response[T] {
	return Response[T]{success: &s}
}

// WrapError wraps an existing Error value at payload type T.
func WrapError[T any](e Error) Response[T] {
	return Response[T]{failure: &e}
}

// WrapException wraps an existing Exception value at payload type T.
func WrapException[T any](x Exception) Response[T] {
	return NewException[T](x.Err)
}

// Kind reports which variant r holds.
func (r Response[T]) Kind() Kind {
	switch {
	case r.success != nil:
		return KindSuccess
	case r.failure != nil:
		return KindError
	default:
		return KindException
	}
}

func (r Response[T]) IsSuccess() bool { return r.Kind() == KindSuccess }
func (r Response[T]) IsFailure() bool { return r.Kind() != KindSuccess }

// AsSuccess returns the Success variant, if r holds one.
func (r Response[T]) AsSuccess() (Success[T], bool) {
	if r.success == nil {
		return Success[T]{}, false
	}
	return *r.success, true
}

// AsError returns the Error variant, if r holds one.
func (r Response[T]) AsError() (Error, bool) {
	if r.Kind() != KindError {
		return Error{}, false
	}
	return *r.failure, true
}

// AsException returns the Exception variant, if r holds one.
func (r Response[T]) AsException() (Exception, bool) {
	if r.Kind() != KindException {
		return Exception{}, false
	}
	if r.exception == nil {
		return Exception{Err: ErrUnclassified}, true
	}
	return *r.exception, true
}

// AsFailure returns the Failure variant (Error or Exception), if r holds one.
func (r Response[T]) AsFailure() (Failure, bool) {
	if e, ok := r.AsError(); ok {
		return e, true
	}
	if x, ok := r.AsException(); ok {
		return x, true
	}
	return nil, false
}

func (r Response[T]) String() string {
	switch r.Kind() {
	case KindSuccess:
		return fmt.Sprintf("Success(%d)", r.success.StatusCode)
	case KindError:
		return "Error(" + r.failure.Message() + ")"
	default:
		x, _ := r.AsException()
		return "Exception(" + x.Message() + ")"
	}
}

// retype reinterprets a failure at a new payload type. Failures carry no payload,
// so only the variant pointers move; it must not be called on a Success.
func retype[T, V any](r Response[T]) Response[V] {
	return Response[V]{failure: r.failure, exception: r.exception}
}
