package cpfuture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsync_PublishesFnResult(t *testing.T) {
	f := Async(func() (int, error) { return 7, nil }, DefaultOptions())
	r := waitReady(t, f)
	require.True(t, r.HasValue())
	assert.Equal(t, 7, r.Value())
}

func TestAsync_PublishesFnError(t *testing.T) {
	f := Async(func() (int, error) { return 0, errors.New("broke") }, DefaultOptions())
	r := waitReady(t, f)
	require.True(t, r.HasError())
	assert.Contains(t, r.Error().Message, "broke")
}

func TestAsync_PanicRecoveredAsError(t *testing.T) {
	f := Async(func() (int, error) { panic("async kaboom") }, DefaultOptions())
	r := waitReady(t, f)
	require.True(t, r.HasError())
	assert.Contains(t, r.Error().Message, "async kaboom")
}

func TestAsyncWithOwner_SkipsWhenOwnerDead(t *testing.T) {
	owner := &fakeOwner{alive: false}
	called := false
	f := AsyncWithOwner(owner, func() (int, error) {
		called = true
		return 1, nil
	}, DefaultOptions())

	r := waitReady(t, f)
	assert.False(t, called)
	require.True(t, r.HasError())
	assert.True(t, r.Error().Is(LifetimeExpired))
}

func TestAsyncWithOwner_RunsWhenOwnerAlive(t *testing.T) {
	owner := &fakeOwner{alive: true}
	f := AsyncWithOwner(owner, func() (int, error) { return 9, nil }, DefaultOptions())

	r := waitReady(t, f)
	require.True(t, r.HasValue())
	assert.Equal(t, 9, r.Value())
}

func TestAsync_BoundToCancelledHandleSettlesCancelled(t *testing.T) {
	h := NewCancellationHandle()
	h.Cancel()

	f := Async(func() (int, error) { return 1, nil }, DefaultOptions().WithCancellation(h))
	r := waitReady(t, f)
	if r.HasError() {
		assert.True(t, r.Error().Is(Cancelled))
	} else {
		assert.Equal(t, 1, r.Value())
	}
}
