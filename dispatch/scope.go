package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Scope is a unit of work bound to a parent context. Callbacks dispatched on it
// run as children of the scope: cancelling the parent, or the scope itself,
// cancels every child that has not run yet.
//
// A failing child does not cancel its siblings.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
}

// NewScope returns a Scope whose lifetime is bounded by parent.
func NewScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context returns the scope's context. It is done once the scope is cancelled.
func (s *Scope) Context() context.Context { return s.ctx }

// SetLimit bounds the number of children running at once; see errgroup.Group.SetLimit.
// It must be called before any child is launched.
func (s *Scope) SetLimit(n int) { s.group.SetLimit(n) }

// Go launches fn as a child of the scope. It reports false, without running fn,
// if the scope is already cancelled.
func (s *Scope) Go(fn func(ctx context.Context) error) bool {
	if s.ctx.Err() != nil {
		return false
	}
	s.group.Go(func() error {
		return fn(s.ctx)
	})
	return true
}

// Dispatch runs fn as a child of the scope. fn receives a context that is done
// when either the scope or ctx is done.
func (s *Scope) Dispatch(ctx context.Context, fn func(context.Context)) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	child, cancel := context.WithCancel(s.ctx)
	stop := func() bool { return false }
	if ctx != nil {
		stop = context.AfterFunc(ctx, cancel)
	}
	s.group.Go(func() error {
		defer cancel()
		defer stop()
		fn(child)
		return nil
	})
	return nil
}

// Cancel cancels the scope and all pending children.
func (s *Scope) Cancel() { s.cancel() }

// Wait blocks until every launched child returned and reports the first error
// returned by a child started with Go.
func (s *Scope) Wait() error { return s.group.Wait() }

// Close cancels the scope and waits for its children.
func (s *Scope) Close() error {
	s.cancel()
	return s.group.Wait()
}
