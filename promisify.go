package cpfuture

// Async submits fn to the Options' Scheduler under its ExecutionPolicy and
// returns a Future that resolves with its outcome; under the default
// AnyThread policy fn runs inline on the calling goroutine before Async
// returns. It is the asynchronous analogue of [Convert]: where
// Convert transforms an already-settled Result synchronously, Async
// produces the first Result in a chain.
func Async[T any](fn func() (T, error), opts Options) Future[T] {
	p, f := NewPromise[T]()
	if opts.hasCancellation() {
		bind(opts.cancellation, p)
	}
	scheduler := opts.resolvedScheduler()
	scheduler.Submit(opts.policy, opts.thread, func() {
		runAsync(p, opts.owner, fn)
	})
	return f
}

// AsyncWithOwner is Async gated by a [LifetimeMonitor] over owner: if owner
// is no longer alive by the time fn would run, fn is skipped and the
// Future resolves to [LifetimeExpired] instead.
func AsyncWithOwner[T any](owner any, fn func() (T, error), opts Options) Future[T] {
	return Async(fn, opts.WithOwner(owner))
}

func runAsync[T any](p Promise[T], owner any, fn func() (T, error)) {
	if p.state.isSet() {
		return
	}
	if !ownerAlive(owner) {
		p.SetError(LifetimeExpired)
		return
	}

	value, err := invokeAsyncGuarded(fn)
	if err != nil {
		p.SetError(toError(err))
		return
	}
	p.SetValue(value)
}

// invokeAsyncGuarded mirrors invokeGuarded's panic-to-PanicError recovery
// for the producer side of a chain, so a panicking Async body settles its
// Future instead of crashing the scheduler goroutine.
func invokeAsyncGuarded[T any](fn func() (T, error)) (value T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = PanicError{Value: e}
			} else {
				err = PanicError{Value: rec}
			}
		}
	}()
	return fn()
}
