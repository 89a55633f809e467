package cpfuture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOwner struct {
	alive bool
}

func (o *fakeOwner) Alive() bool { return o.alive }

func TestLifetimeMonitor_LivenessCapability(t *testing.T) {
	owner := &fakeOwner{alive: true}
	m := NewLifetimeMonitor(owner)

	got, ok := m.Pin()
	require.True(t, ok)
	assert.Same(t, owner, got)

	owner.alive = false
	_, ok = m.Pin()
	assert.False(t, ok)
}

func TestLifetimeMonitor_ContextCapability(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewLifetimeMonitor[context.Context](ctx)

	_, ok := m.Pin()
	assert.True(t, ok)

	cancel()
	_, ok = m.Pin()
	assert.False(t, ok)
}

func TestLifetimeMonitor_UnsupportedOwnerPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewLifetimeMonitor(42)
	})
}

func TestContinuation_LifetimeExpiredSkipsUserCode(t *testing.T) {
	owner := &fakeOwner{alive: false}
	called := false

	f0 := Ready(1)
	f1 := ThenValue(f0, func(v int) int {
		called = true
		return v
	}, DefaultOptions().WithOwner(owner))

	r := waitReady(t, f1)
	assert.False(t, called)
	require.True(t, r.HasError())
	assert.True(t, r.Error().Is(LifetimeExpired))
}

func TestContinuation_LifetimeAliveRunsUserCode(t *testing.T) {
	owner := &fakeOwner{alive: true}

	f0 := Ready(1)
	f1 := ThenValue(f0, func(v int) int { return v + 1 }, DefaultOptions().WithOwner(owner))

	r := waitReady(t, f1)
	require.True(t, r.HasValue())
	assert.Equal(t, 2, r.Value())
}

func TestAbortSignal_ImplementsLiveness(t *testing.T) {
	controller := NewAbortController()
	signal := controller.Signal()
	assert.True(t, signal.Alive())

	controller.Abort("done")
	assert.False(t, signal.Alive())
	assert.True(t, signal.Aborted())
}
