// Package executor wraps a single network call with a per-attempt timeout
// and an exponential-backoff retry policy. It is a pure combinator: the
// only side effect is the operation it runs.
package executor

import (
	"context"
	"errors"
	"time"
)

type Options struct {
	// Timeout bounds each individual attempt. Zero means no per-attempt
	// deadline beyond the caller's context.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int
	// RetryDelay is the base delay before the first retry. It doubles
	// after every retry.
	RetryDelay time.Duration
}

// Operation is one unit of retryable work, typically a single HTTP call.
type Operation[T any] func(ctx context.Context) (T, error)

// Do runs op up to opts.MaxRetries+1 times. A deadline hit cancels the
// in-flight attempt through its context and is reported as *TimeoutError.
// When every attempt fails, the last failure is returned, never swallowed.
// Cancellation of the parent context stops retrying immediately.
func Do[T any](ctx context.Context, opts Options, op Operation[T]) (T, error) {
	var zero T
	var lastErr error

	retries := opts.MaxRetries
	if retries < 0 {
		// The operation always runs at least once.
		retries = 0
	}
	delay := opts.RetryDelay

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
			delay *= 2
		}

		result, err := runAttempt(ctx, opts.Timeout, op)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err
	}

	return zero, lastErr
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, op Operation[T]) (T, error) {
	attemptCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := op(attemptCtx)
	if err == nil {
		return result, nil
	}

	// The attempt deadline firing surfaces as a context error from the
	// aborted request. Report it as a timeout only when the parent
	// context is still live.
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		var zero T
		return zero, &TimeoutError{Timeout: timeout}
	}
	var zero T
	return zero, err
}
