package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aponysus/outcome/classify"
	"github.com/aponysus/outcome/dispatch"
	"github.com/aponysus/outcome/observe"
	"github.com/aponysus/outcome/response"
)

// Call is a single prepared request whose result decodes to T. A Call runs at
// most once; use Clone to issue the same request again.
type Call[T any] struct {
	client    *Client
	req       *http.Request
	decode    classify.Decoder[T]
	name      string
	requestID string

	executed atomic.Bool

	mu       sync.Mutex
	cancel   context.CancelFunc
	canceled bool

	done     chan struct{}
	doneOnce sync.Once
}

// NewCall prepares req on c. A nil decode discards the success body.
//
// The call's request ID is taken from req's X-Request-Id header, or generated.
func NewCall[T any](c *Client, req *http.Request, decode classify.Decoder[T]) *Call[T] {
	if c == nil {
		c = NewClient()
	}
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	return &Call[T]{
		client:    c,
		req:       req,
		decode:    decode,
		name:      req.Method + " " + req.URL.Path,
		requestID: id,
		done:      make(chan struct{}),
	}
}

// RequestID returns the ID sent in the X-Request-Id header.
func (c *Call[T]) RequestID() string { return c.requestID }

// Clone returns an unexecuted copy of c with a fresh request ID. Requests whose
// body cannot be replayed produce an Exception wrapping ErrBodyNotReplayable
// when the clone runs.
func (c *Call[T]) Clone() *Call[T] {
	req := c.req.Clone(c.req.Context())
	req.Header.Del(RequestIDHeader)
	clone := NewCall(c.client, req, c.decode)
	if hasBody(c.req) && c.req.GetBody == nil {
		clone.executed.Store(true)
	}
	return clone
}

// Execute runs the call on the calling goroutine and returns its outcome.
func (c *Call[T]) Execute(ctx context.Context) response.Response[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	defer c.finish()
	r, ev := c.run(ctx)
	c.client.observer.OnDelivered(ctx, ev)
	return r
}

// Request runs the call in the background and hands the outcome to onResult
// on the client's dispatcher.
func (c *Call[T]) Request(onResult func(response.Response[T])) *Call[T] {
	return c.RequestOn(c.client.dispatcher, func(_ context.Context, r response.Response[T]) {
		if onResult != nil {
			onResult(r)
		}
	})
}

// RequestOn runs the call in the background and hands the outcome to onResult
// on d.
func (c *Call[T]) RequestOn(d dispatch.Dispatcher, onResult func(context.Context, response.Response[T])) *Call[T] {
	if d == nil {
		d = c.client.dispatcher
	}
	go c.deliver(context.Background(), d, onResult)
	return c
}

// RequestContext runs the call as a child of ctx. Cancelling ctx aborts the
// request and any delivery that has not started; dropped outcomes are reported
// to the observer instead of onResult.
func (c *Call[T]) RequestContext(ctx context.Context, onResult func(context.Context, response.Response[T])) *Call[T] {
	scope := dispatch.NewScope(ctx)
	go func() {
		c.deliver(scope.Context(), scope, onResult)
		_ = scope.Wait()
		scope.Cancel()
	}()
	return c
}

// Cancel aborts the call. An in-flight request fails with context.Canceled; a
// call that has not started yet fails as soon as it runs.
func (c *Call[T]) Cancel() {
	c.mu.Lock()
	c.canceled = true
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Done is closed once the outcome was returned, delivered or dropped.
func (c *Call[T]) Done() <-chan struct{} { return c.done }

func (c *Call[T]) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}

func (c *Call[T]) deliver(ctx context.Context, d dispatch.Dispatcher, onResult func(context.Context, response.Response[T])) {
	r, ev := c.run(ctx)
	obs := c.client.observer
	info := observe.CallInfo{Name: c.name, RequestID: c.requestID}

	err := d.Dispatch(ctx, func(dctx context.Context) {
		defer c.finish()
		if dctx.Err() != nil {
			obs.OnDropped(dctx, ev, observe.DropCanceled)
			return
		}
		dctx = observe.WithCallInfo(dctx, info)
		if onResult != nil {
			onResult(dctx, r)
		}
		obs.OnDelivered(dctx, ev)
	})
	if err != nil {
		reason := observe.DropRejected
		if ctx.Err() != nil {
			reason = observe.DropCanceled
		}
		c.client.logger.Warn("outcome not delivered", "call", c.name, "request_id", c.requestID, "reason", reason, "err", err)
		obs.OnDropped(ctx, ev, reason)
		c.finish()
	}
}

func (c *Call[T]) run(ctx context.Context) (response.Response[T], observe.Event) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	var r response.Response[T]
	if !c.executed.CompareAndSwap(false, true) {
		err := ErrAlreadyExecuted
		if hasBody(c.req) && c.req.GetBody == nil {
			err = ErrBodyNotReplayable
		}
		r = response.NewException[T](err)
	} else {
		r = c.do(ctx)
	}
	ev := observe.EventOf(c.name, c.requestID, r, start, time.Now())
	if capture, ok := observe.EventCaptureFromContext(ctx); ok {
		capture.Store(ev)
	}
	return r, ev
}

func (c *Call[T]) do(ctx context.Context) response.Response[T] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.canceled {
		cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	req := c.req.Clone(ctx)
	if c.req.GetBody != nil {
		body, err := c.req.GetBody()
		if err != nil {
			return classify.FromError[T](err)
		}
		req.Body = body
	}
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set(RequestIDHeader, c.requestID)
	if c.client.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.client.userAgent)
	}

	resp, err := c.client.httpClient.Do(req)
	return classify.FromHTTP(resp, err, c.decode,
		classify.WithStatusClassifier(c.client.classifier),
		classify.WithMaxErrorBody(c.client.maxErrorBody),
	)
}

func hasBody(req *http.Request) bool {
	return req.Body != nil && req.Body != http.NoBody
}
