package goroutine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverableGoPanic(t *testing.T) {
	ev, ok := <-RecoverableGo(func() { panic("boom") })
	require.True(t, ok)
	require.Equal(t, "boom", ev.Panic)
	require.NotEmpty(t, ev.Stack)
}

func TestRecoverableGoReturn(t *testing.T) {
	ran := false
	ev, ok := <-RecoverableGo(func() { ran = true })
	require.False(t, ok)
	require.Nil(t, ev)
	require.True(t, ran)
}
