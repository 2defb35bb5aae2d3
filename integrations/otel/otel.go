// Package otel records delivered outcomes on OpenTelemetry spans.
package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aponysus/outcome/observe"
	"github.com/aponysus/outcome/response"
)

// TracerName is the instrumentation name used for spans started by Observer.
const TracerName = "github.com/aponysus/outcome/integrations/otel"

// Observer annotates the recording span in the callback context with an
// "outcome.delivered" or "outcome.dropped" event. When the context carries no
// recording span, it starts one per event covering the call's start and end.
type Observer struct {
	tracer trace.Tracer
}

// Option configures NewObserver.
type Option func(*config)

type config struct {
	provider trace.TracerProvider
}

// WithTracerProvider sets the provider spans are started from. Defaults to
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.provider = tp
	}
}

func NewObserver(opts ...Option) *Observer {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	return &Observer{tracer: cfg.provider.Tracer(TracerName)}
}

func (o *Observer) OnDelivered(ctx context.Context, ev observe.Event) {
	span, end := o.span(ctx, ev)
	defer end()

	span.AddEvent("outcome.delivered", trace.WithAttributes(attributes(ev)...))
	switch ev.Kind {
	case response.KindSuccess:
		span.SetStatus(codes.Ok, "")
	default:
		msg := ev.Kind.String()
		if ev.Err != nil {
			msg = ev.Err.Error()
			span.RecordError(ev.Err)
		}
		span.SetStatus(codes.Error, msg)
	}
}

func (o *Observer) OnDropped(ctx context.Context, ev observe.Event, reason string) {
	span, end := o.span(ctx, ev)
	defer end()

	span.AddEvent("outcome.dropped", trace.WithAttributes(append(attributes(ev), attribute.String("outcome.drop_reason", reason))...))
}

func (o *Observer) span(ctx context.Context, ev observe.Event) (trace.Span, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		return span, func() {}
	}

	startOpts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindClient)}
	if !ev.Start.IsZero() {
		startOpts = append(startOpts, trace.WithTimestamp(ev.Start))
	}
	name := ev.Name
	if name == "" {
		name = "outcome"
	}
	_, span := o.tracer.Start(ctx, name, startOpts...)
	return span, func() {
		if ev.End.IsZero() {
			span.End()
			return
		}
		span.End(trace.WithTimestamp(ev.End))
	}
}

func attributes(ev observe.Event) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("outcome.kind", ev.Kind.String()),
	}
	if ev.Name != "" {
		attrs = append(attrs, attribute.String("outcome.name", ev.Name))
	}
	if ev.RequestID != "" {
		attrs = append(attrs, attribute.String("outcome.request_id", ev.RequestID))
	}
	if ev.StatusCode != 0 {
		attrs = append(attrs, attribute.Int("outcome.status_code", ev.StatusCode))
	}
	return attrs
}
