package observe

import "context"

type callInfoKey struct{}

// CallInfo is per-call metadata attached to the context a callback receives.
type CallInfo struct {
	Name      string
	RequestID string
}

// WithCallInfo returns a context derived from ctx that carries info.
func WithCallInfo(ctx context.Context, info CallInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callInfoKey{}, info)
}

// CallFromContext returns the CallInfo from ctx, if present.
func CallFromContext(ctx context.Context) (CallInfo, bool) {
	if ctx == nil {
		return CallInfo{}, false
	}
	info, ok := ctx.Value(callInfoKey{}).(CallInfo)
	return info, ok
}
