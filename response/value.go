package response

// Value returns the Success data and true, or the zero value and false.
func (r Response[T]) Value() (T, bool) {
	if s, ok := r.AsSuccess(); ok {
		return s.Data, true
	}
	var zero T
	return zero, false
}

// GetOrZero returns the Success data, or the zero value of T for either failure.
func (r Response[T]) GetOrZero() T {
	v, _ := r.Value()
	return v
}

// GetOrElse returns the Success data, or def for either failure.
func (r Response[T]) GetOrElse(def T) T {
	if v, ok := r.Value(); ok {
		return v
	}
	return def
}

// GetOrElseFunc returns the Success data, or the result of fn for either failure.
// fn is only called on failure.
func (r Response[T]) GetOrElseFunc(fn func() T) T {
	if v, ok := r.Value(); ok {
		return v
	}
	return fn()
}

// Get returns the Success data. For an Error it returns a *StatusError carrying the
// error's message; for an Exception it returns the captured error itself.
func (r Response[T]) Get() (T, error) {
	var zero T
	switch r.Kind() {
	case KindSuccess:
		return r.success.Data, nil
	case KindError:
		return zero, &StatusError{Failure: *r.failure}
	default:
		x, _ := r.AsException()
		return zero, x.Err
	}
}

// MustGet is like Get but panics with the error instead of returning it.
func (r Response[T]) MustGet() T {
	v, err := r.Get()
	if err != nil {
		panic(err)
	}
	return v
}
