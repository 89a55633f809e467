package cpfuture

import (
	"runtime"
	"sync"
)

// CancellationHandle is a shared handle over a cancellationState: binding a
// promise to it lets callers cancel a whole group of in-flight
// continuations together.
type CancellationHandle struct {
	state *cancellationState
}

type cancellationState struct {
	mu         sync.Mutex
	cancelled  bool
	forwarders []func()
}

// NewCancellationHandle creates a fresh, uncancelled handle.
//
// Go has no destructors, so a group cannot be cancelled the moment its last
// handle falls out of scope the way RAII would. Instead it registers a
// runtime.SetFinalizer that best-effort cancels the group if every copy of
// the handle becomes unreachable without an explicit Cancel call. This is
// deliberately best-effort and non-deterministic (the finalizer may run
// late, or not at all if the process exits first); callers that need
// deterministic cleanup should call Cancel explicitly.
func NewCancellationHandle() CancellationHandle {
	h := CancellationHandle{state: &cancellationState{}}
	runtime.SetFinalizer(h.state, func(s *cancellationState) {
		s.mu.Lock()
		alreadyCancelled := s.cancelled
		s.mu.Unlock()
		if alreadyCancelled {
			return
		}
		getGlobalLogger().Log(LogEntry{
			Level:    LevelDebug,
			Category: "cancellation",
			Message:  "cancelling group from finalizer, no explicit Cancel observed",
		})
		s.cancel()
	})
	return h
}

// Cancel marks the group cancelled and forwards cancellation to every bound
// promise. bind and Cancel race freely by design: after Cancel returns,
// every promise bound before or during the call is in a final state, but
// whether that state is [Cancelled] or a normal result depends on which
// reached the promise first.
func (h CancellationHandle) Cancel() {
	h.state.cancel()
}

func (s *cancellationState) cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	forwarders := s.forwarders
	s.forwarders = nil
	s.mu.Unlock()

	for _, fwd := range forwarders {
		fwd()
	}
}

// bind registers promise p into the handle's group. If the group is already
// cancelled, p is cancelled immediately; otherwise a forwarder is appended
// that will cancel p on a future Cancel call.
//
// bind deliberately captures only p, never h or h.state, so a promise
// bound into a handle can never keep that handle's cancellationState alive
// through its own forwarder, avoiding a reference cycle between a
// long-lived promise and a handle it is bound to.
func bind[T any](h CancellationHandle, p Promise[T]) {
	h.state.mu.Lock()
	if h.state.cancelled {
		h.state.mu.Unlock()
		p.SetError(Cancelled)
		return
	}
	h.state.forwarders = append(h.state.forwarders, func() {
		p.SetError(Cancelled)
	})
	h.state.mu.Unlock()
}
