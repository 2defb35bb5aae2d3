// Package prometheus exports delivered outcomes as Prometheus metrics.
package prometheus

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aponysus/outcome/observe"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "outcome"

// Observer implements observe.Observer with three metrics:
//
//	<ns>_responses_total{kind,status}  counter of delivered outcomes
//	<ns>_dropped_total{reason}         counter of outcomes never delivered
//	<ns>_duration_seconds{kind}        histogram of call latency
//
// status is the numeric status code, or "none" for exceptions.
type Observer struct {
	responses *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// Option configures NewObserver.
type Option func(*config)

type config struct {
	namespace string
	buckets   []float64
}

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithBuckets sets the duration histogram buckets. Defaults to prometheus.DefBuckets.
func WithBuckets(b []float64) Option {
	return func(c *config) {
		c.buckets = b
	}
}

// NewObserver creates the metrics and registers them with reg. A nil reg leaves
// them unregistered.
func NewObserver(reg prometheus.Registerer, opts ...Option) *Observer {
	cfg := config{namespace: DefaultNamespace, buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	factory := promauto.With(reg)
	return &Observer{
		responses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "responses_total",
			Help:      "Total number of outcomes delivered, by kind and status code",
		}, []string{"kind", "status"}),
		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "dropped_total",
			Help:      "Total number of outcomes dropped before delivery",
		}, []string{"reason"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "duration_seconds",
			Help:      "Call latency in seconds, by outcome kind",
			Buckets:   cfg.buckets,
		}, []string{"kind"}),
	}
}

func (o *Observer) OnDelivered(_ context.Context, ev observe.Event) {
	kind := ev.Kind.String()
	o.responses.WithLabelValues(kind, statusLabel(ev)).Inc()
	if d := ev.Duration(); d > 0 {
		o.duration.WithLabelValues(kind).Observe(d.Seconds())
	}
}

func (o *Observer) OnDropped(_ context.Context, _ observe.Event, reason string) {
	o.dropped.WithLabelValues(reason).Inc()
}

func statusLabel(ev observe.Event) string {
	if ev.StatusCode == 0 {
		return "none"
	}
	return strconv.Itoa(ev.StatusCode)
}
