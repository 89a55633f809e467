package cpfuture

// continuationOutcome is what a shape-specific wrapper hands back to the
// generic dispatcher: either a settled Result[U], or a nested Future[U]
// still pending unwrap.
type continuationOutcome[U any] struct {
	result   Result[U]
	nested   Future[U]
	isNested bool
}

func settled[U any](r Result[U]) continuationOutcome[U] {
	return continuationOutcome[U]{result: r}
}

func nestedFuture[U any](f Future[U]) continuationOutcome[U] {
	return continuationOutcome[U]{nested: f, isNested: true}
}

// resultFromErrPair adapts the idiomatic Go (value, error) return shape
// that ThenValueErr/ThenResultErr/Convert's Result-output callables use
// into a Result[U], without forcing callers to construct a Result by hand.
func resultFromErrPair[U any](value U, err error) Result[U] {
	if err != nil {
		return Err[U](toError(err))
	}
	return Ok(value)
}

// then is the internal generic dispatcher every Then* function delegates
// to. It implements the uniform dispatch contract shared by every
// continuation shape: the already-set short-circuit, the lifetime gate,
// panic safety, and publication (including nested-Future unwrap), namely
// everything except the input-shape-dependent error-forwarding decision,
// which body already encodes by the time it is called, and the
// scheduling-policy mapping, handled by the Options-resolved Scheduler.
func then[P, U any](f Future[P], opts Options, body func(Result[P]) continuationOutcome[U]) Future[U] {
	p, out := NewPromise[U]()
	if opts.hasCancellation() {
		bind(opts.cancellation, p)
	}
	scheduler := opts.resolvedScheduler()
	owner := opts.owner
	f.OnComplete(func(r Result[P]) {
		scheduler.Submit(opts.policy, opts.thread, func() {
			runContinuation(p, owner, r, body)
		})
	})
	return out
}

func runContinuation[P, U any](p Promise[U], owner any, r Result[P], body func(Result[P]) continuationOutcome[U]) {
	// Step 1: an earlier cancellation may have already won the race.
	if p.state.isSet() {
		return
	}
	// Step 2: lifetime gate.
	if !ownerAlive(owner) {
		p.SetError(LifetimeExpired)
		return
	}

	outcome, err := invokeGuarded(r, body)
	if err != nil {
		p.SetError(toError(err))
		return
	}

	if outcome.isNested {
		outcome.nested.OnComplete(func(inner Result[U]) {
			p.Set(inner)
		})
		return
	}
	p.Set(outcome.result)
}

// invokeGuarded runs body with panic recovery, so a panicking continuation
// body publishes a PanicError instead of crashing the scheduler goroutine.
func invokeGuarded[P, U any](r Result[P], body func(Result[P]) continuationOutcome[U]) (outcome continuationOutcome[U], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = PanicError{Value: e}
			} else {
				err = PanicError{Value: rec}
			}
		}
	}()
	outcome = body(r)
	return outcome, nil
}

// ThenValue attaches a continuation that only observes successful values:
// fn runs only if the predecessor fulfilled; otherwise its error is
// forwarded verbatim.
func ThenValue[P, U any](f Future[P], fn func(P) U, opts Options) Future[U] {
	return then(f, opts, func(r Result[P]) continuationOutcome[U] {
		if r.HasError() {
			return settled(Err[U](r.Error()))
		}
		return settled(Ok(fn(r.Value())))
	})
}

// ThenValueVoid is ThenValue with no output payload.
func ThenValueVoid[P any](f Future[P], fn func(P), opts Options) Future[struct{}] {
	return then(f, opts, func(r Result[P]) continuationOutcome[struct{}] {
		if r.HasError() {
			return settled(Err[struct{}](r.Error()))
		}
		fn(r.Value())
		return settled(Ok(struct{}{}))
	})
}

// ThenValueErr is ThenValue whose body can itself fail, returned in the
// idiomatic Go (value, error) form.
func ThenValueErr[P, U any](f Future[P], fn func(P) (U, error), opts Options) Future[U] {
	return then(f, opts, func(r Result[P]) continuationOutcome[U] {
		if r.HasError() {
			return settled(Err[U](r.Error()))
		}
		return settled(resultFromErrPair(fn(r.Value())))
	})
}

// ThenValueFuture is ThenValue whose body itself returns a Future[U]; the
// nested future is auto-unwrapped so chains stay flat.
func ThenValueFuture[P, U any](f Future[P], fn func(P) Future[U], opts Options) Future[U] {
	return then(f, opts, func(r Result[P]) continuationOutcome[U] {
		if r.HasError() {
			return settled(Err[U](r.Error()))
		}
		return nestedFuture(fn(r.Value()))
	})
}

// ThenResult attaches a continuation that observes the full Result,
// including errors. It is the only shape that can recover from an upstream
// error.
func ThenResult[P, U any](f Future[P], fn func(Result[P]) U, opts Options) Future[U] {
	return then(f, opts, func(r Result[P]) continuationOutcome[U] {
		return settled(Ok(fn(r)))
	})
}

// ThenResultVoid is ThenResult with no output payload.
func ThenResultVoid[P any](f Future[P], fn func(Result[P]), opts Options) Future[struct{}] {
	return then(f, opts, func(r Result[P]) continuationOutcome[struct{}] {
		fn(r)
		return settled(Ok(struct{}{}))
	})
}

// ThenResultErr is ThenResult whose body can itself fail.
func ThenResultErr[P, U any](f Future[P], fn func(Result[P]) (U, error), opts Options) Future[U] {
	return then(f, opts, func(r Result[P]) continuationOutcome[U] {
		return settled(resultFromErrPair(fn(r)))
	})
}

// ThenResultFuture is ThenResult whose body itself returns a Future[U].
func ThenResultFuture[P, U any](f Future[P], fn func(Result[P]) Future[U], opts Options) Future[U] {
	return then(f, opts, func(r Result[P]) continuationOutcome[U] {
		return nestedFuture(fn(r))
	})
}

// Convert is the synchronous counterpart of the continuation dispatcher: it
// applies fn to a complete Result[P] and returns Result[U] immediately,
// with the same error-forwarding rule as ThenValueErr: fn only runs if r
// is fulfilled. It is a value-to-value/error transform distinct from the
// continuation family: no scheduling, no promise involved.
func Convert[P, U any](r Result[P], fn func(P) (U, error)) Result[U] {
	if r.HasError() {
		return Err[U](r.Error())
	}
	return resultFromErrPair(fn(r.Value()))
}
