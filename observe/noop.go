package observe

import "context"

// NoopObserver implements Observer with no-op methods.
type NoopObserver struct{}

func (NoopObserver) OnDelivered(context.Context, Event)       {}
func (NoopObserver) OnDropped(context.Context, Event, string) {}
