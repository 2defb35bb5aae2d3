package observe_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aponysus/outcome/observe"
)

func TestCallInfoRoundTrip(t *testing.T) {
	if _, ok := observe.CallFromContext(context.Background()); ok {
		t.Fatal("expected no call info on a bare context")
	}
	ctx := observe.WithCallInfo(context.Background(), observe.CallInfo{Name: "GET /p", RequestID: "r1"})
	info, ok := observe.CallFromContext(ctx)
	if !ok || info.RequestID != "r1" || info.Name != "GET /p" {
		t.Fatalf("got %+v, %v", info, ok)
	}
}

func TestRecordEvent(t *testing.T) {
	ctx, capture := observe.RecordEvent(context.Background())
	if capture.Event() != nil {
		t.Fatal("event populated before the call finished")
	}

	got, ok := observe.EventCaptureFromContext(ctx)
	if !ok || got != capture {
		t.Fatal("capture not reachable from the derived context")
	}

	var wg sync.WaitGroup
	for _, name := range []string{"first", "second"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got.Store(observe.Event{Name: name})
		}()
	}
	wg.Wait()

	ev := capture.Event()
	if ev == nil || (ev.Name != "first" && ev.Name != "second") {
		t.Fatalf("got %+v", ev)
	}
	capture.Store(observe.Event{Name: "late"})
	if capture.Event().Name == "late" {
		t.Fatal("Store overwrote an earlier event")
	}
}

func TestEventCaptureNil(t *testing.T) {
	var c *observe.EventCapture
	c.Store(observe.Event{})
	if c.Event() != nil {
		t.Fatal("nil capture returned an event")
	}
	if _, ok := observe.EventCaptureFromContext(context.Background()); ok {
		t.Fatal("capture found on a bare context")
	}
}
