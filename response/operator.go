package response

import "context"

// Operator handles every variant of a Response in one value.
type Operator[T any] interface {
	OnSuccess(Success[T])
	OnError(Error)
	OnException(Exception)
}

// ContextOperator is the context-aware form of Operator.
type ContextOperator[T any] interface {
	OnSuccess(context.Context, Success[T]) error
	OnError(context.Context, Error) error
	OnException(context.Context, Exception) error
}

// OperatorFuncs adapts plain functions to Operator. Nil fields are skipped.
type OperatorFuncs[T any] struct {
	Success   func(Success[T])
	Error     func(Error)
	Exception func(Exception)
}

func (o OperatorFuncs[T]) OnSuccess(s Success[T]) {
	if o.Success != nil {
		o.Success(s)
	}
}

func (o OperatorFuncs[T]) OnError(e Error) {
	if o.Error != nil {
		o.Error(e)
	}
}

func (o OperatorFuncs[T]) OnException(x Exception) {
	if o.Exception != nil {
		o.Exception(x)
	}
}

// Operate calls the method of op matching r's variant and returns r.
func (r Response[T]) Operate(op Operator[T]) Response[T] {
	return r.OnProcedure(op.OnSuccess, op.OnError, op.OnException)
}

// OperateContext calls the method of op matching r's variant and waits for it.
func (r Response[T]) OperateContext(ctx context.Context, op ContextOperator[T]) (Response[T], error) {
	return r.OnProcedureContext(ctx, op.OnSuccess, op.OnError, op.OnException)
}
