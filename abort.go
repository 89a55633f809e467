package cpfuture

import "sync"

// AbortSignal is a cooperative cancellation flag, modeled on the DOM
// AbortController/AbortSignal pattern: a producer gets an AbortController,
// hands its Signal() to consumers, and aborting the controller flips the
// signal for every holder. Unlike [CancellationHandle], which cancels a
// group of *promises* bound to it, an AbortSignal is a plain owner
// capability; it implements [Liveness] so it can be passed directly as
// Options.WithOwner, gating a continuation on "has the caller given up on
// this?" without that caller needing a concrete promise to bind.
type AbortSignal struct {
	mu       sync.RWMutex
	aborted  bool
	reason   any
	handlers []func(reason any)
}

func newAbortSignal() *AbortSignal {
	return &AbortSignal{}
}

// Aborted reports whether the signal has fired.
func (s *AbortSignal) Aborted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aborted
}

// Alive implements [Liveness]: an AbortSignal is "alive" exactly while it
// has not been aborted, so it can be used directly as a LifetimeMonitor
// owner.
func (s *AbortSignal) Alive() bool {
	return !s.Aborted()
}

// Reason returns the abort reason, or nil if not aborted.
func (s *AbortSignal) Reason() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// OnAbort registers handler to run when the signal aborts. If already
// aborted, handler runs immediately with the current reason.
func (s *AbortSignal) OnAbort(handler func(reason any)) {
	if handler == nil {
		return
	}
	s.mu.Lock()
	if s.aborted {
		reason := s.reason
		s.mu.Unlock()
		handler(reason)
		return
	}
	s.handlers = append(s.handlers, handler)
	s.mu.Unlock()
}

func (s *AbortSignal) abort(reason any) {
	s.mu.Lock()
	if s.aborted {
		s.mu.Unlock()
		return
	}
	s.aborted = true
	s.reason = reason
	handlers := make([]func(reason any), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, handler := range handlers {
		handler(reason)
	}
}

// AbortController owns an AbortSignal and can fire it.
type AbortController struct {
	signal *AbortSignal
}

// NewAbortController creates a controller with a fresh, unaborted signal.
func NewAbortController() *AbortController {
	return &AbortController{signal: newAbortSignal()}
}

// Signal returns the controller's AbortSignal.
func (c *AbortController) Signal() *AbortSignal {
	return c.signal
}

// Abort fires the controller's signal. A nil reason is replaced with a
// default AbortError. Subsequent calls are no-ops.
func (c *AbortController) Abort(reason any) {
	if reason == nil {
		reason = &AbortError{}
	}
	c.signal.abort(reason)
}

// AbortError is the default reason used when Abort is called without one.
type AbortError struct {
	Reason any
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	switch r := e.Reason.(type) {
	case nil:
		return "AbortError: the operation was aborted"
	case string:
		return "AbortError: " + r
	case error:
		return "AbortError: " + r.Error()
	default:
		return "AbortError: the operation was aborted"
	}
}

// Is implements errors.Is support for AbortError.
func (e *AbortError) Is(target error) bool {
	_, ok := target.(*AbortError)
	return ok
}

// Unwrap returns the underlying error if Reason is itself an error.
func (e *AbortError) Unwrap() error {
	if err, ok := e.Reason.(error); ok {
		return err
	}
	return nil
}

// AbortAny returns a composite AbortSignal that aborts as soon as any one
// of signals aborts, with that signal's reason. An empty input returns a
// signal that never aborts.
func AbortAny(signals []*AbortSignal) *AbortSignal {
	composite := newAbortSignal()
	if len(signals) == 0 {
		return composite
	}

	for _, sig := range signals {
		if sig != nil && sig.Aborted() {
			composite.abort(sig.Reason())
			return composite
		}
	}

	var once sync.Once
	for _, sig := range signals {
		if sig == nil {
			continue
		}
		sig.OnAbort(func(reason any) {
			once.Do(func() {
				composite.abort(reason)
			})
		})
	}
	return composite
}
