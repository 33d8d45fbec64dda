package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), Options{MaxRetries: 2, RetryDelay: 10 * time.Millisecond},
		func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDo_NegativeMaxRetriesStillRunsOnce(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), Options{MaxRetries: -1},
		func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesWithDoublingBackoff(t *testing.T) {
	calls := 0
	start := time.Now()

	got, err := Do(context.Background(), Options{MaxRetries: 2, RetryDelay: 100 * time.Millisecond},
		func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		})

	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
	// 100ms before attempt 2, 200ms before attempt 3.
	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond)
}

func TestDo_ExhaustionSurfacesLastError(t *testing.T) {
	calls := 0
	wantErr := errors.New("still broken")

	_, err := Do(context.Background(), Options{MaxRetries: 2, RetryDelay: time.Millisecond},
		func(ctx context.Context) (int, error) {
			calls++
			return 0, wantErr
		})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, wantErr)
}

func TestDo_TimeoutIsTyped(t *testing.T) {
	_, err := Do(context.Background(), Options{Timeout: 20 * time.Millisecond},
		func(ctx context.Context) (int, error) {
			select {
			case <-time.After(time.Second):
				return 1, nil
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		})

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 20*time.Millisecond, timeoutErr.Timeout)
}

func TestDo_ParentCancellationStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Do(ctx, Options{MaxRetries: 5, RetryDelay: 50 * time.Millisecond},
		func(ctx context.Context) (int, error) {
			calls++
			cancel()
			return 0, errors.New("transient")
		})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_HTTPErrorRetried(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Options{MaxRetries: 1, RetryDelay: time.Millisecond},
		func(ctx context.Context) (int, error) {
			calls++
			return 0, &HTTPError{Status: 503}
		})

	assert.Equal(t, 2, calls)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 503, httpErr.Status)
}
