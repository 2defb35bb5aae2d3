package response

import (
	"context"
	"iter"
)

// Seq returns a sequence yielding the Success data once, or nothing for a failure.
// The sequence can be ranged over any number of times.
func (r Response[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s, ok := r.AsSuccess(); ok {
			yield(s.Data)
		}
	}
}

// Seq returns a sequence yielding fn(data) once for a Success, or nothing for a
// failure. fn runs on each iteration, not when Seq is called.
func Seq[T, R any](r Response[T], fn func(T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		if s, ok := r.AsSuccess(); ok {
			yield(fn(s.Data))
		}
	}
}

// SeqContext runs fn on the Success data under ctx and returns a sequence yielding
// its result once. Failures yield an empty sequence and fn is not called. When
// fn fails, the returned sequence is empty as well.
func SeqContext[T, R any](ctx context.Context, r Response[T], fn func(context.Context, T) (R, error)) (iter.Seq[R], error) {
	empty := func(func(R) bool) {}
	s, ok := r.AsSuccess()
	if !ok {
		return empty, nil
	}
	if err := ctx.Err(); err != nil {
		return empty, err
	}
	v, err := fn(ctx, s.Data)
	if err != nil {
		return empty, err
	}
	return func(yield func(R) bool) { yield(v) }, nil
}
