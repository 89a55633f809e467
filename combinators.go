package cpfuture

import (
	"sync"
	"sync/atomic"
)

// Settled is AllSettled's per-slot outcome: exactly one of Value/Err
// populated, mirroring Result[T] but named distinctly so a caller can tell
// at a glance this came from a combinator that never itself fails.
type Settled[T any] struct {
	Value T
	Err   Error
	Ok    bool
}

// All aggregates futures with [Fast] fail mode. It is equivalent to
// AllWithMode(futures, Fast).
func All[T any](futures []Future[T]) Future[[]T] {
	return AllWithMode(futures, Fast)
}

// AllWithMode aggregates futures into a single Future of their values in
// input order. Empty input resolves immediately to Ok([]). In [Fast] mode
// the outer future settles as soon as either every input has succeeded or
// any input has failed; pending siblings keep running but their results
// are discarded. In [Full] mode the outer future waits for every input to
// settle: if exactly one rejected, that Error is reported verbatim; if more
// than one rejected, the reported Error keeps the first-observed identity
// (so errors.Is against a well-known sentinel still works) but its Message
// is replaced with a [CombinedError] listing every rejection.
func AllWithMode[T any](futures []Future[T], mode FailMode) Future[[]T] {
	p, out := NewPromise[[]T]()
	n := len(futures)
	if n == 0 {
		p.SetValue([]T{})
		return out
	}

	values := make([]T, n)
	var remaining atomic.Int64
	remaining.Store(int64(n))
	var firstErr atomic.Pointer[Error]

	var mu sync.Mutex
	var errs []error

	publishFull := func() {
		mu.Lock()
		collected := errs
		mu.Unlock()
		switch len(collected) {
		case 0:
			p.SetValue(values)
		case 1:
			p.SetError(*firstErr.Load())
		default:
			// Identity (Context/Code) still comes from the first-observed
			// error, so errors.Is matching against a well-known sentinel
			// keeps working; the message carries every rejection for
			// diagnostics via CombinedError.
			reported := *firstErr.Load()
			reported.Message = (&CombinedError{Errors: collected}).Error()
			p.SetError(reported)
		}
	}

	for i, f := range futures {
		i := i
		f.OnComplete(func(r Result[T]) {
			if r.HasError() {
				e := r.Error()
				firstErr.CompareAndSwap(nil, &e)
				mu.Lock()
				errs = append(errs, e)
				mu.Unlock()
				if mode == Fast {
					p.SetError(e)
				}
			} else {
				values[i] = r.Value()
			}
			left := remaining.Add(-1)
			if mode == Full && left == 0 {
				publishFull()
			} else if mode == Fast && left == 0 {
				p.SetValue(values)
			}
		})
	}
	return out
}

// AllSettled aggregates futures into a Future of per-slot [Settled]
// outcomes, never itself failing. It is the Go analogue of JavaScript's
// Promise.allSettled.
func AllSettled[T any](futures []Future[T]) Future[[]Settled[T]] {
	p, out := NewPromise[[]Settled[T]]()
	n := len(futures)
	if n == 0 {
		p.SetValue([]Settled[T]{})
		return out
	}

	slots := make([]Settled[T], n)
	var remaining atomic.Int64
	remaining.Store(int64(n))

	for i, f := range futures {
		i := i
		f.OnComplete(func(r Result[T]) {
			if r.HasError() {
				slots[i] = Settled[T]{Err: r.Error()}
			} else {
				slots[i] = Settled[T]{Value: r.Value(), Ok: true}
			}
			if remaining.Add(-1) == 0 {
				p.SetValue(slots)
			}
		})
	}
	return out
}

// Any races futures and settles with the first to complete's Result
// verbatim, whether fulfilled or rejected. Empty input resolves
// immediately to Err(InvalidArgument).
func Any[T any](futures []Future[T]) Future[T] {
	p, out := NewPromise[T]()
	if len(futures) == 0 {
		p.SetError(InvalidArgument)
		return out
	}
	for _, f := range futures {
		f.OnComplete(func(r Result[T]) {
			p.Set(r)
		})
	}
	return out
}
