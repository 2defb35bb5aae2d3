package observe

import (
	"context"

	"github.com/aponysus/outcome/internal"
)

// BaseObserver implements Observer with no-op methods.
//
// Users can embed BaseObserver to implement only the callbacks they need.
type BaseObserver struct{}

func (BaseObserver) OnDelivered(context.Context, Event)       {}
func (BaseObserver) OnDropped(context.Context, Event, string) {}

// MultiObserver fans out events to multiple observers.
type MultiObserver struct {
	Observers []Observer
}

// Multi returns an Observer fanning out to the non-nil observers in obs.
func Multi(obs ...Observer) Observer {
	kept := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if !internal.IsTypedNil(o) {
			kept = append(kept, o)
		}
	}
	switch len(kept) {
	case 0:
		return NoopObserver{}
	case 1:
		return kept[0]
	}
	return MultiObserver{Observers: kept}
}

func (m MultiObserver) OnDelivered(ctx context.Context, ev Event) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnDelivered(ctx, ev)
		}
	}
}

func (m MultiObserver) OnDropped(ctx context.Context, ev Event, reason string) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnDropped(ctx, ev, reason)
		}
	}
}
