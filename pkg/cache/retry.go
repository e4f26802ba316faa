package cache

import (
	"context"
	"errors"
	"time"
)

// Backoff used by [RetryWithBackoff] for feed requests.
const (
	defaultAttempts = 3
	defaultDelay    = time.Second
)

// RetryableError marks a transient failure, such as a timeout or a 5xx
// from the feed. [Retry] gives up on anything not marked this way.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err's chain holds a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry calls fn until it succeeds, returns an unmarked error, or has run
// attempts times. The wait starts at delay and doubles after each failure.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	err := fn()
	for left := max(attempts, 1) - 1; left > 0 && IsRetryable(err); left-- {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}

// RetryWithBackoff is Retry with the feed defaults: three attempts, one
// second apart at first.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, defaultAttempts, defaultDelay, fn)
}
