package cpfuture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_OkAndErr(t *testing.T) {
	ok := Ok(42)
	assert.True(t, ok.HasValue())
	assert.False(t, ok.HasError())
	assert.Equal(t, 42, ok.Value())

	bad := Err[int](Cancelled)
	assert.False(t, bad.HasValue())
	assert.True(t, bad.HasError())
	assert.Equal(t, Cancelled, bad.Error())
}

func TestResult_IsCancelled(t *testing.T) {
	assert.True(t, Err[int](Cancelled).IsCancelled())
	assert.False(t, Err[int](LifetimeExpired).IsCancelled())
	assert.False(t, Ok(1).IsCancelled())
}

func TestError_EqualityIgnoresMessage(t *testing.T) {
	a := Error{Context: 1, Code: 2, Message: "first"}
	b := Error{Context: 1, Code: 2, Message: "second"}
	assert.True(t, a.Is(b))

	c := Error{Context: 1, Code: 3, Message: "first"}
	assert.False(t, a.Is(c))
}

func TestTransform_PropagatesError(t *testing.T) {
	r := Err[int](Cancelled)
	u := Transform[int, string](r)
	require.True(t, u.HasError())
	assert.True(t, u.Error().Is(Cancelled))
}

func TestTransform_PanicsOnFulfilled(t *testing.T) {
	assert.Panics(t, func() {
		Transform[int, string](Ok(1))
	})
}
