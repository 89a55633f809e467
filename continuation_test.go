package cpfuture

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitReady[T any](t *testing.T, f Future[T]) Result[T] {
	t.Helper()
	done := make(chan Result[T], 1)
	f.OnComplete(func(r Result[T]) { done <- r })
	select {
	case r := <-done:
		return r
	case <-time.After(time.Second):
		t.Fatal("future never settled")
		panic("unreachable")
	}
}

func TestEndToEnd_ChainOfValues(t *testing.T) {
	f0 := Async(func() (int, error) { return 10, nil }, DefaultOptions())
	f1 := ThenResult(f0, func(r Result[int]) int { return r.Value() + 2 }, DefaultOptions())
	r := waitReady(t, f1)
	require.True(t, r.HasValue())
	assert.Equal(t, 12, r.Value())
}

func TestEndToEnd_ErrorMessageRoundTrip(t *testing.T) {
	want := Error{Context: 0xdead, Code: 0xdead0000, Message: "Error Message"}
	f0 := Async(func() (int, error) { return 0, want }, DefaultOptions())
	f1 := ThenResult(f0, func(r Result[int]) string {
		if r.HasError() {
			return r.Error().Message
		}
		return ""
	}, DefaultOptions())
	r := waitReady(t, f1)
	require.True(t, r.HasValue())
	assert.Equal(t, "Error Message", r.Value())
}

// A Value-input stage downstream of an error is skipped; a Result-input
// stage always runs.
func TestContinuation_ErrorForwardingSkipsValueInput(t *testing.T) {
	f0 := ReadyError[int](Cancelled)

	called := false
	f1 := ThenValue(f0, func(v int) int {
		called = true
		return v
	}, DefaultOptions())

	r := waitReady(t, f1)
	assert.False(t, called)
	assert.True(t, r.HasError())
	assert.True(t, r.Error().Is(Cancelled))
}

func TestContinuation_ResultInputAlwaysRuns(t *testing.T) {
	f0 := ReadyError[int](Cancelled)

	var observed Result[int]
	f1 := ThenResultVoid(f0, func(r Result[int]) { observed = r }, DefaultOptions())
	waitReady(t, f1)

	assert.True(t, observed.HasError())
}

func TestContinuation_ThenValueErr(t *testing.T) {
	f0 := Ready(4)
	f1 := ThenValueErr(f0, func(v int) (int, error) {
		if v == 4 {
			return 0, errors.New("boom")
		}
		return v, nil
	}, DefaultOptions())

	r := waitReady(t, f1)
	require.True(t, r.HasError())
	assert.Contains(t, r.Error().Message, "boom")
}

// A continuation returning a Future auto-unwraps the nested value.
func TestContinuation_ThenValueFuture_Unwraps(t *testing.T) {
	f0 := Ready(3)
	f1 := ThenValueFuture(f0, func(v int) Future[string] {
		return Ready("nested")
	}, DefaultOptions())

	r := waitReady(t, f1)
	require.True(t, r.HasValue())
	assert.Equal(t, "nested", r.Value())
}

func TestContinuation_ThenResultFuture_Unwraps(t *testing.T) {
	f0 := ReadyError[int](Cancelled)
	f1 := ThenResultFuture(f0, func(r Result[int]) Future[int] {
		if r.HasError() {
			return Ready(-1)
		}
		return Ready(r.Value())
	}, DefaultOptions())

	r := waitReady(t, f1)
	require.True(t, r.HasValue())
	assert.Equal(t, -1, r.Value())
}

func TestContinuation_PanicIsRecoveredAsError(t *testing.T) {
	f0 := Ready(1)
	f1 := ThenValue(f0, func(v int) int {
		panic("kaboom")
	}, DefaultOptions())

	r := waitReady(t, f1)
	require.True(t, r.HasError())
	assert.Contains(t, r.Error().Message, "kaboom")
}

func TestConvert_Synchronous(t *testing.T) {
	r := Convert(Ok(2), func(v int) (int, error) { return v * 10, nil })
	require.True(t, r.HasValue())
	assert.Equal(t, 20, r.Value())

	errIn := Err[int](InvalidArgument)
	r2 := Convert(errIn, func(v int) (int, error) { return v, nil })
	assert.True(t, r2.Error().Is(InvalidArgument))
}

func TestThenValueVoid(t *testing.T) {
	var seen int
	f0 := Ready(9)
	f1 := ThenValueVoid(f0, func(v int) { seen = v }, DefaultOptions())
	r := waitReady(t, f1)
	assert.True(t, r.HasValue())
	assert.Equal(t, 9, seen)
}
