package response

import "context"

// The sync combinators below are the context variants run under
// context.Background() with a handler that cannot fail. Both surfaces go through
// the same when* helpers so their matching rules cannot drift apart.

func whenSuccess[T any](ctx context.Context, r Response[T], fn func(context.Context, Success[T]) error) error {
	s, ok := r.AsSuccess()
	if !ok || fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s)
}

func whenError[T any](ctx context.Context, r Response[T], fn func(context.Context, Error) error) error {
	e, ok := r.AsError()
	if !ok || fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, e)
}

func whenException[T any](ctx context.Context, r Response[T], fn func(context.Context, Exception) error) error {
	x, ok := r.AsException()
	if !ok || fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, x)
}

func whenFailure[T any](ctx context.Context, r Response[T], fn func(context.Context, Failure) error) error {
	f, ok := r.AsFailure()
	if !ok || fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, f)
}

func lift[V any](fn func(V)) func(context.Context, V) error {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, v V) error {
		fn(v)
		return nil
	}
}

// OnSuccess calls fn if r is a Success and returns r.
func (r Response[T]) OnSuccess(fn func(Success[T])) Response[T] {
	_ = whenSuccess(context.Background(), r, lift(fn))
	return r
}

// OnError calls fn if r is an Error and returns r.
func (r Response[T]) OnError(fn func(Error)) Response[T] {
	_ = whenError(context.Background(), r, lift(fn))
	return r
}

// OnException calls fn if r is an Exception and returns r.
func (r Response[T]) OnException(fn func(Exception)) Response[T] {
	_ = whenException(context.Background(), r, lift(fn))
	return r
}

// OnFailure calls fn if r is an Error or an Exception and returns r.
func (r Response[T]) OnFailure(fn func(Failure)) Response[T] {
	_ = whenFailure(context.Background(), r, lift(fn))
	return r
}

// OnProcedure is OnSuccess, OnError and OnException applied one after another.
// Nil handlers are skipped. Exactly one handler fires since r holds exactly one
// variant, but all three checks always run.
func (r Response[T]) OnProcedure(onSuccess func(Success[T]), onError func(Error), onException func(Exception)) Response[T] {
	r.OnSuccess(onSuccess)
	r.OnError(onError)
	r.OnException(onException)
	return r
}

// OnSuccessContext calls fn if r is a Success and waits for it to return.
// If ctx is already done, fn is not called and ctx.Err() is returned.
func (r Response[T]) OnSuccessContext(ctx context.Context, fn func(context.Context, Success[T]) error) (Response[T], error) {
	return r, whenSuccess(ctx, r, fn)
}

// OnErrorContext calls fn if r is an Error and waits for it to return.
func (r Response[T]) OnErrorContext(ctx context.Context, fn func(context.Context, Error) error) (Response[T], error) {
	return r, whenError(ctx, r, fn)
}

// OnExceptionContext calls fn if r is an Exception and waits for it to return.
func (r Response[T]) OnExceptionContext(ctx context.Context, fn func(context.Context, Exception) error) (Response[T], error) {
	return r, whenException(ctx, r, fn)
}

// OnFailureContext calls fn if r is an Error or an Exception and waits for it to return.
func (r Response[T]) OnFailureContext(ctx context.Context, fn func(context.Context, Failure) error) (Response[T], error) {
	return r, whenFailure(ctx, r, fn)
}

// OnProcedureContext is OnSuccessContext, OnErrorContext and OnExceptionContext
// applied one after another. All three always run; the first handler error is
// returned.
func (r Response[T]) OnProcedureContext(
	ctx context.Context,
	onSuccess func(context.Context, Success[T]) error,
	onError func(context.Context, Error) error,
	onException func(context.Context, Exception) error,
) (Response[T], error) {
	_, err := r.OnSuccessContext(ctx, onSuccess)
	if _, e := r.OnErrorContext(ctx, onError); err == nil {
		err = e
	}
	if _, e := r.OnExceptionContext(ctx, onException); err == nil {
		err = e
	}
	return r, err
}

// OnSuccessMapped maps a Success through mapper and passes the model to fn.
// A nil fn is skipped and mapper is not called.
func OnSuccessMapped[T, V any](r Response[T], mapper SuccessMapper[T, V], fn func(V)) Response[T] {
	if fn == nil {
		return r
	}
	_ = whenSuccess(context.Background(), r, func(_ context.Context, s Success[T]) error {
		fn(mapper.Map(s))
		return nil
	})
	return r
}

// OnErrorMapped maps an Error through mapper and passes the model to fn.
func OnErrorMapped[T, V any](r Response[T], mapper ErrorMapper[V], fn func(V)) Response[T] {
	if fn == nil {
		return r
	}
	_ = whenError(context.Background(), r, func(_ context.Context, e Error) error {
		fn(mapper.Map(e))
		return nil
	})
	return r
}

// OnSuccessMappedContext is the context variant of OnSuccessMapped.
func OnSuccessMappedContext[T, V any](ctx context.Context, r Response[T], mapper SuccessMapper[T, V], fn func(context.Context, V) error) (Response[T], error) {
	if fn == nil {
		return r, nil
	}
	return r, whenSuccess(ctx, r, func(ctx context.Context, s Success[T]) error {
		return fn(ctx, mapper.Map(s))
	})
}

// OnErrorMappedContext is the context variant of OnErrorMapped.
func OnErrorMappedContext[T, V any](ctx context.Context, r Response[T], mapper ErrorMapper[V], fn func(context.Context, V) error) (Response[T], error) {
	if fn == nil {
		return r, nil
	}
	return r, whenError(ctx, r, func(ctx context.Context, e Error) error {
		return fn(ctx, mapper.Map(e))
	})
}
