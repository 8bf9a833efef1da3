package application

import (
	"context"
	"time"
)

// RetryOptions configures exponential backoff around a flaky call.
type RetryOptions struct {
	Attempts    int // total calls, including the first
	InitialWait time.Duration
	Factor      float64
	MaxWait     time.Duration
	ShouldRetry func(error) bool // nil retries every error
}

// DefaultRetry is used for VIN decode and market lookups.
var DefaultRetry = RetryOptions{
	Attempts:    3,
	InitialWait: 100 * time.Millisecond,
	Factor:      2,
	MaxWait:     5 * time.Second,
}

// Retry calls fn until it succeeds, attempts run out, ShouldRetry declines the
// error, or ctx is done. The last error is returned.
func Retry[T any](ctx context.Context, opts RetryOptions, fn func(context.Context) (T, error)) (T, error) {
	attempts := max(1, opts.Attempts)
	factor := opts.Factor
	if factor < 1 {
		factor = 2
	}
	wait := opts.InitialWait

	var zero T
	for attempt := 1; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= attempts || (opts.ShouldRetry != nil && !opts.ShouldRetry(err)) {
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}

		wait = time.Duration(float64(wait) * factor)
		if opts.MaxWait > 0 && wait > opts.MaxWait {
			wait = opts.MaxWait
		}
	}
}
