package cpfuture

// Result is a value-or-error sum type: the settled payload carried by every
// Promise/Future. It is never both, and after construction it is never
// neither: a Result is always in exactly one of the two states.
type Result[T any] struct {
	value  T
	err    Error
	hasErr bool
}

// Ok builds a fulfilled Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err builds a rejected Result.
func Err[T any](err Error) Result[T] {
	return Result[T]{err: err, hasErr: true}
}

// HasValue reports whether the Result is fulfilled.
func (r Result[T]) HasValue() bool { return !r.hasErr }

// HasError reports whether the Result is rejected.
func (r Result[T]) HasError() bool { return r.hasErr }

// Value returns the fulfilled value. Calling it on a rejected Result returns
// the zero value of T; callers should check HasValue/HasError first.
func (r Result[T]) Value() T { return r.value }

// Error returns the rejection error. Calling it on a fulfilled Result
// returns the zero Error.
func (r Result[T]) Error() Error { return r.err }

// IsCancelled reports whether the Result is rejected with [Cancelled],
// by (context, code) identity only.
func (r Result[T]) IsCancelled() bool {
	return r.hasErr && r.err.Is(Cancelled)
}

// Transform maps a rejected Result[T] onto Result[U], carrying the same
// error across the type change. It must only be called on a rejected
// Result: calling it on a fulfilled one panics, since a value-replacement
// for the fulfilled branch is always supplied directly by the continuation
// machinery instead (see then in continuation.go).
func Transform[T, U any](r Result[T]) Result[U] {
	if r.hasErr {
		return Err[U](r.err)
	}
	panic("cpfuture: Transform called on a fulfilled Result")
}
