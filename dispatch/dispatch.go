// Package dispatch provides the execution contexts that response callbacks are
// delivered on.
package dispatch

import (
	"context"
	"errors"
)

// ErrDispatcherClosed is returned by Dispatch once a dispatcher stopped accepting work.
var ErrDispatcherClosed = errors.New("outcome: dispatcher closed")

// Dispatcher runs fn on some execution context, passing it ctx.
//
// Dispatch must not block for the duration of fn unless the implementation
// documents it. A non-nil error means fn will never run.
type Dispatcher interface {
	Dispatch(ctx context.Context, fn func(context.Context)) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, fn func(context.Context)) error

func (f DispatcherFunc) Dispatch(ctx context.Context, fn func(context.Context)) error {
	return f(ctx, fn)
}

// GoDispatcher runs every callback on a new goroutine.
type GoDispatcher struct{}

func (GoDispatcher) Dispatch(ctx context.Context, fn func(context.Context)) error {
	go fn(ctx)
	return nil
}

// InlineDispatcher runs callbacks on the calling goroutine before Dispatch returns.
type InlineDispatcher struct{}

func (InlineDispatcher) Dispatch(ctx context.Context, fn func(context.Context)) error {
	fn(ctx)
	return nil
}
