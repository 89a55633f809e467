package cpfuture

// Promise is the write side of a promiseState: a producer calls Set exactly
// once to publish the settled Result. Set collapses a resolve/reject pair
// into one call since Result already carries the value/error distinction.
type Promise[T any] struct {
	state *promiseState[T]
}

// Future is the read side of the same promiseState. It is handed to
// consumers; they cannot publish through it, only observe or chain off it.
type Future[T any] struct {
	state *promiseState[T]
}

// NewPromise creates a pending Promise/Future pair sharing one promiseState.
func NewPromise[T any]() (Promise[T], Future[T]) {
	s := newPromiseState[T]()
	return Promise[T]{state: s}, Future[T]{state: s}
}

// Set publishes result into the promise. The first call wins; every
// subsequent call is silently ignored: a completed promise can never be
// reset.
func (p Promise[T]) Set(result Result[T]) {
	p.state.set(result)
}

// SetValue is a convenience for Set(Ok(value)).
func (p Promise[T]) SetValue(value T) {
	p.state.set(Ok(value))
}

// SetError is a convenience for Set(Err(err)).
func (p Promise[T]) SetError(err Error) {
	p.state.set(Err[T](err))
}

// Cancel is a convenience for SetError(Cancelled).
func (p Promise[T]) Cancel() {
	p.state.set(Err[T](Cancelled))
}

// IsSet reports whether the promise has already published a result.
func (p Promise[T]) IsSet() bool {
	return p.state.isSet()
}

// Future returns the paired Future, for producers that only held onto the
// Promise and now need to hand the read side to a caller.
func (p Promise[T]) Future() Future[T] {
	return Future[T]{state: p.state}
}

// IsValid reports whether f shares a state with some Promise, as opposed to
// being the zero Future[T].
func (f Future[T]) IsValid() bool {
	return f.state != nil
}

// IsReady reports whether the underlying state has published a result.
func (f Future[T]) IsReady() bool {
	return f.state.isSet()
}

// Get returns the settled Result. ok is false if the Future is not yet
// ready; Get is only meaningful once IsReady is true.
func (f Future[T]) Get() (result Result[T], ok bool) {
	if !f.state.isSet() {
		return Result[T]{}, false
	}
	return f.state.get(), true
}

// OnComplete registers fn to run exactly once with the settled Result, per
// promiseState.onComplete's late-subscriber contract. It is the primitive
// every Then* function and combinator is built on; most callers should
// prefer the Then* functions instead.
func (f Future[T]) OnComplete(fn func(Result[T])) {
	f.state.onComplete(fn)
}

// Ready returns a Future already settled with value.
func Ready[T any](value T) Future[T] {
	p, f := NewPromise[T]()
	p.SetValue(value)
	return f
}

// ReadyError returns a Future already settled with err.
func ReadyError[T any](err Error) Future[T] {
	p, f := NewPromise[T]()
	p.SetError(err)
	return f
}
