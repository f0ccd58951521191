package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return nil
		}, fastOpts())
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("transient")
			}
			return nil
		}, fastOpts())
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return fmt.Errorf("always fails")
		}, fastOpts())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMaxRetries))
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error stops immediately", func(t *testing.T) {
		calls := 0
		marker := errors.New("bad credentials")
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{Err: marker, Retryable: false}
		}, fastOpts())
		require.Error(t, err)
		assert.True(t, errors.Is(err, marker))
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		err := WithRetry(cancelCtx, func() error {
			return fmt.Errorf("fails")
		}, fastOpts())
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
