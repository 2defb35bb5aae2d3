package response

import "context"

// SuccessMapper converts a Success into a caller-defined model.
type SuccessMapper[T, V any] interface {
	Map(Success[T]) V
}

// SuccessMapperFunc adapts a function to SuccessMapper.
type SuccessMapperFunc[T, V any] func(Success[T]) V

func (f SuccessMapperFunc[T, V]) Map(s Success[T]) V { return f(s) }

// ErrorMapper converts an Error into a caller-defined error model.
type ErrorMapper[V any] interface {
	Map(Error) V
}

// ErrorMapperFunc adapts a function to ErrorMapper.
type ErrorMapperFunc[V any] func(Error) V

func (f ErrorMapperFunc[V]) Map(e Error) V { return f(e) }

// MapSuccess transforms the data of a Success, keeping its status code and header.
// Failures are returned unchanged, re-typed to V.
func MapSuccess[T, V any](r Response[T], fn func(T) V) Response[V] {
	s, ok := r.AsSuccess()
	if !ok {
		return retype[T, V](r)
	}
	return NewSuccess(fn(s.Data), s.StatusCode, s.Header)
}

// MapSuccessContext is the context variant of MapSuccess. If fn fails, the
// returned Response is an Exception wrapping the same error.
func MapSuccessContext[T, V any](ctx context.Context, r Response[T], fn func(context.Context, T) (V, error)) (Response[V], error) {
	s, ok := r.AsSuccess()
	if !ok {
		return retype[T, V](r), nil
	}
	if err := ctx.Err(); err != nil {
		return NewException[V](err), err
	}
	v, err := fn(ctx, s.Data)
	if err != nil {
		return NewException[V](err), err
	}
	return NewSuccess(v, s.StatusCode, s.Header), nil
}

// Map converts s into a model using mapper.
func Map[T, V any](s Success[T], mapper SuccessMapper[T, V]) V {
	return mapper.Map(s)
}

// MapFunc converts s into a model using fn.
func MapFunc[T, V any](s Success[T], fn func(Success[T]) V) V {
	return fn(s)
}

// MapContext converts s into a model using a context-aware fn.
func MapContext[T, V any](ctx context.Context, s Success[T], fn func(context.Context, Success[T]) (V, error)) (V, error) {
	if err := ctx.Err(); err != nil {
		var zero V
		return zero, err
	}
	return fn(ctx, s)
}

// MapError converts e into an error model using mapper.
func MapError[V any](e Error, mapper ErrorMapper[V]) V {
	return mapper.Map(e)
}

// MapErrorFunc converts e into an error model using fn.
func MapErrorFunc[V any](e Error, fn func(Error) V) V {
	return fn(e)
}

// MapErrorContext converts e into an error model using a context-aware fn.
func MapErrorContext[V any](ctx context.Context, e Error, fn func(context.Context, Error) (V, error)) (V, error) {
	if err := ctx.Err(); err != nil {
		var zero V
		return zero, err
	}
	return fn(ctx, e)
}
