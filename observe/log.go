package observe

import (
	"context"
	"log/slog"

	"github.com/aponysus/outcome/response"
)

// LogObserver writes one structured record per event. Successes are logged at
// Debug, failures at Warn and drops at Info.
type LogObserver struct {
	Logger *slog.Logger
}

// NewLogObserver returns a LogObserver writing to logger, or to slog.Default if
// logger is nil.
func NewLogObserver(logger *slog.Logger) LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return LogObserver{Logger: logger}
}

func (o LogObserver) OnDelivered(ctx context.Context, ev Event) {
	level := slog.LevelDebug
	if ev.Kind != response.KindSuccess {
		level = slog.LevelWarn
	}
	o.logger().LogAttrs(ctx, level, "outcome delivered", attrs(ev)...)
}

func (o LogObserver) OnDropped(ctx context.Context, ev Event, reason string) {
	o.logger().LogAttrs(ctx, slog.LevelInfo, "outcome dropped", append(attrs(ev), slog.String("reason", reason))...)
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func attrs(ev Event) []slog.Attr {
	out := []slog.Attr{
		slog.String("name", ev.Name),
		slog.String("kind", ev.Kind.String()),
	}
	if ev.RequestID != "" {
		out = append(out, slog.String("request_id", ev.RequestID))
	}
	if ev.StatusCode != 0 {
		out = append(out, slog.Int("status", ev.StatusCode))
	}
	if d := ev.Duration(); d > 0 {
		out = append(out, slog.Duration("duration", d))
	}
	if ev.Err != nil {
		out = append(out, slog.String("err", ev.Err.Error()))
	}
	return out
}
