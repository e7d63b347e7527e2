package http

import (
	"context"
	"errors"
	"time"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for download retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// permanentError marks an attempt failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// permanent stops withRetry and returns err unchanged.
func permanent(err error) error {
	return &permanentError{err: err}
}

// withRetry calls attempt until it succeeds, using delays as the waits
// between attempts (len(delays)+1 attempts in total). An error wrapped with
// permanent ends the loop immediately.
func withRetry(ctx context.Context, delays []time.Duration, logger LogFunc, attempt func(ctx context.Context) error) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		lastErr = err

		if i >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry (attempt %d): %v", i+2, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[i]):
		}
	}

	return lastErr
}
