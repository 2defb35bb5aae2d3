package classify

import (
	"errors"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/aponysus/outcome/response"
)

// DefaultMaxErrorBody bounds how much of a failed response's body is kept.
const DefaultMaxErrorBody int64 = 1 << 20

// ErrNilResponse is classified when a transport returns neither a response nor an error.
var ErrNilResponse = errors.New("outcome: transport returned a nil response")

// HTTPClassifier treats 2xx as success.
type HTTPClassifier struct {
	// SuccessCodes is an optional set of additional status codes treated as success.
	SuccessCodes map[int]struct{}
}

func (c HTTPClassifier) IsSuccess(statusCode int) bool {
	if statusCode >= 200 && statusCode < 300 {
		return true
	}
	if c.SuccessCodes == nil {
		return false
	}
	_, ok := c.SuccessCodes[statusCode]
	return ok
}

// LenientClassifier treats every status below 400 as success. It suits clients
// that do not follow redirects.
type LenientClassifier struct{}

func (LenientClassifier) IsSuccess(statusCode int) bool {
	return statusCode >= 100 && statusCode < 400
}

// Option configures FromHTTP.
type Option func(*options)

type options struct {
	classifier   StatusClassifier
	maxErrorBody int64
}

// WithStatusClassifier sets the classifier deciding which statuses are successful.
func WithStatusClassifier(c StatusClassifier) Option {
	return func(o *options) {
		o.classifier = c
	}
}

// WithMaxErrorBody bounds the number of error body bytes kept. n <= 0 keeps the default.
func WithMaxErrorBody(n int64) Option {
	return func(o *options) {
		o.maxErrorBody = n
	}
}

// FromHTTP classifies the result of an http.Client call.
//
// A non-nil err yields an Exception wrapping err. Otherwise a successful status
// decodes the body with decode (nil decode discards it); a failure status keeps
// up to the configured limit of the raw body as the Error body. Decode failures,
// decoder panics and body read failures become Exceptions. resp.Body is always
// drained and closed.
func FromHTTP[T any](resp *http.Response, err error, decode Decoder[T], opts ...Option) response.Response[T] {
	if err != nil {
		return FromError[T](err)
	}
	if resp == nil {
		return FromError[T](ErrNilResponse)
	}

	o := options{classifier: HTTPClassifier{}, maxErrorBody: DefaultMaxErrorBody}
	for _, opt := range opts {
		opt(&o)
	}
	if o.classifier == nil {
		o.classifier = HTTPClassifier{}
	}
	if o.maxErrorBody <= 0 {
		o.maxErrorBody = DefaultMaxErrorBody
	}

	body := resp.Body
	if body == nil {
		body = http.NoBody
	}
	defer func() {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.CopyN(io.Discard, body, 4096)
		body.Close()
	}()

	ex := Exchange[T]{StatusCode: resp.StatusCode, Header: resp.Header}

	if !o.classifier.IsSuccess(resp.StatusCode) {
		raw, err := io.ReadAll(io.LimitReader(body, o.maxErrorBody))
		if err != nil {
			return FromError[T](err)
		}
		if len(raw) > 0 {
			ex.ErrorBody = raw
		}
		return Of(o.classifier, ex)
	}

	data, err := decodeWithRecovery(decode, body)
	if err != nil {
		return FromError[T](&DecodeError{StatusCode: resp.StatusCode, Err: err})
	}
	ex.Body = data
	return Of(o.classifier, ex)
}

func decodeWithRecovery[T any](decode Decoder[T], r io.Reader) (v T, err error) {
	if decode == nil {
		_, err = io.Copy(io.Discard, r)
		return v, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Component: "decoder", Value: rec, Stack: debug.Stack()}
		}
	}()
	return decode(r)
}
