package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond}
}

func TestRetryDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0

	err := fastPolicy().Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0

	err := fastPolicy().Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient failure")
		}

		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryDo_ExhaustsAttempts(t *testing.T) {
	calls := 0

	err := fastPolicy().Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("persistent failure")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRetryDo_RecoversOnSessionError(t *testing.T) {
	calls := 0
	recoveries := 0

	err := fastPolicy().Do(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("Protocol error: Target closed")
		}

		return nil
	}, func(context.Context, error) error {
		recoveries++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, recoveries)
}

func TestRetryDo_NoRecoveryForOrdinaryErrors(t *testing.T) {
	recoveries := 0

	err := fastPolicy().Do(context.Background(), func(context.Context) error {
		return errors.New("no products found on page")
	}, func(context.Context, error) error {
		recoveries++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 0, recoveries)
}

func TestRetryDo_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0

	err := fastPolicy().Do(ctx, func(context.Context) error {
		calls++
		return nil
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestIsSessionError(t *testing.T) {
	ctx := context.Background()

	assert.True(t, IsSessionError(ctx, errors.New("websocket: close 1006 (abnormal closure)")))
	assert.True(t, IsSessionError(ctx, errors.New("detached Frame")))
	assert.True(t, IsSessionError(ctx, errors.New("Session closed")))
	assert.False(t, IsSessionError(ctx, errors.New("no products found on page")))
	assert.False(t, IsSessionError(ctx, nil))

	// a canceled caller is shutdown, not a dead session
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.False(t, IsSessionError(canceled, errors.New("context canceled")))
}
