// Package retry provides a generic exponential-backoff wrapper for
// re-invoking a failing operation.
//
// The wrapper is error-agnostic: it retries any failure, including ones a
// production system would treat as non-retryable. Callers are expected to
// wrap only genuinely transient operations; retrying a 404 simply burns the
// backoff delay before giving up.
package retry

import (
	"context"
	"time"
)

const (
	// DefaultMaxRetries is the default number of additional attempts after
	// the first failure.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the default backoff base.
	DefaultBaseDelay = 1 * time.Second

	// maxBackoff caps a single delay to avoid excessive sleeps.
	maxBackoff = 30 * time.Second
)

// Option configures a retry run.
type Option func(*options)

type options struct {
	maxRetries int
	baseDelay  time.Duration
}

// WithMaxRetries bounds the number of additional attempts. Negative values
// are treated as zero.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxRetries = n
	}
}

// WithBaseDelay sets the backoff base; attempt i sleeps base * 2^i.
func WithBaseDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.baseDelay = d
		}
	}
}

// Delay returns the backoff delay for the given zero-based attempt index:
// base * 2^attempt, capped at 30 seconds.
func Delay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = DefaultBaseDelay
	}
	// Cap the exponent to avoid overflow when computing the multiplier.
	if attempt > 20 {
		attempt = 20
	}
	d := base * time.Duration(1<<attempt)
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}

// Do invokes op until it succeeds or the retry budget is exhausted. On
// exhaustion the last failure is returned unchanged, with no wrapping. If the
// context is cancelled while waiting between attempts, the context error is
// returned instead.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), opts ...Option) (T, error) {
	o := &options{
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(o)
	}

	var zero T
	for attempt := 0; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= o.maxRetries {
			return zero, err
		}
		if sleepErr := sleep(ctx, Delay(o.baseDelay, attempt)); sleepErr != nil {
			return zero, sleepErr
		}
	}
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
