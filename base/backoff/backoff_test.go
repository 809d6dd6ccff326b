package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.Equal(3, b.Attempts())
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewLinear(time.Second, 0)
	require.ErrorIs(t, b.Backoff(ctx), context.Canceled)
}

func TestRetry(t *testing.T) {
	req := require.New(t)
	errBusy := errors.New("busy")
	errFatal := errors.New("fatal")
	retryable := func(err error) bool { return errors.Is(err, errBusy) }

	calls := 0
	err := Retry(context.Background(), NewExponential(time.Millisecond, time.Millisecond), 5, retryable, func() error {
		calls++
		if calls < 3 {
			return errBusy
		}
		return nil
	})
	req.NoError(err)
	req.Equal(3, calls)

	calls = 0
	err = Retry(context.Background(), NewExponential(time.Millisecond, time.Millisecond), 3, retryable, func() error {
		calls++
		return errBusy
	})
	req.ErrorIs(err, errBusy)
	req.Equal(3, calls)

	calls = 0
	err = Retry(context.Background(), NewExponential(time.Millisecond, time.Millisecond), 3, retryable, func() error {
		calls++
		return errFatal
	})
	req.ErrorIs(err, errFatal)
	req.Equal(1, calls)
}
