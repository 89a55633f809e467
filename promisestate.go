package cpfuture

import "sync"

// promiseState is the shared, reference-counted cell behind a Promise[T]/
// Future[T] pair: a one-shot publication slot plus a completion event, with
// a mutex-protected subscriber list that is notified once and then
// discarded.
type promiseState[T any] struct {
	mu          sync.Mutex
	valueSet    bool
	triggered   bool
	value       Result[T]
	subscribers []func(Result[T])
}

func newPromiseState[T any]() *promiseState[T] {
	return &promiseState[T]{}
}

// set publishes value if the state is still pending. A second call is a
// no-op. Subscribers registered before or after the call all observe
// exactly one dispatch, on whichever goroutine reaches the pending branch
// first.
func (s *promiseState[T]) set(value Result[T]) {
	s.mu.Lock()
	if s.valueSet {
		s.mu.Unlock()
		getGlobalLogger().Log(LogEntry{
			Level:    LevelDebug,
			Category: "promise",
			Message:  "dropped redundant set on already-settled promise",
		})
		return
	}
	s.valueSet = true
	s.value = value
	subs := s.subscribers
	s.subscribers = nil
	s.triggered = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
}

// isSet reports whether the state has already settled.
func (s *promiseState[T]) isSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueSet
}

// get returns the settled value. Callers must have already established,
// via isSet or onComplete, that the state is settled.
func (s *promiseState[T]) get() Result[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// onComplete registers fn to run exactly once with the settled Result: if
// the state has already settled it runs fn immediately (on the calling
// goroutine), otherwise it queues fn for the eventual call to set. A late
// subscriber must still observe the one dispatch.
func (s *promiseState[T]) onComplete(fn func(Result[T])) {
	s.mu.Lock()
	if s.valueSet {
		value := s.value
		s.mu.Unlock()
		fn(value)
		return
	}
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}
