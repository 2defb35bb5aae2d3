package dispatch

import (
	"context"
	"sync"

	"github.com/eapache/queue"
)

type task struct {
	ctx context.Context
	fn  func(context.Context)
}

// SerialDispatcher runs callbacks one at a time, in Dispatch order, on a single
// worker goroutine. Callbacks never overlap, so handlers may touch shared state
// without locking.
type SerialDispatcher struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  *queue.Queue
	closed bool
	done   chan struct{}
}

// NewSerialDispatcher starts the worker goroutine. Call Close to stop it.
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{
		tasks: queue.New(),
		done:  make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

func (d *SerialDispatcher) Dispatch(ctx context.Context, fn func(context.Context)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	d.tasks.Add(task{ctx: ctx, fn: fn})
	d.cond.Signal()
	return nil
}

// Pending returns the number of queued callbacks not yet started.
func (d *SerialDispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tasks.Length()
}

// Close stops accepting callbacks, runs the ones already queued and waits for the
// worker to exit. It must not be called from a callback running on d.
func (d *SerialDispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
	<-d.done
}

func (d *SerialDispatcher) run() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for d.tasks.Length() == 0 && !d.closed {
			d.cond.Wait()
		}
		if d.tasks.Length() == 0 {
			d.mu.Unlock()
			return
		}
		t := d.tasks.Remove().(task)
		d.mu.Unlock()

		t.fn(t.ctx)
	}
}
