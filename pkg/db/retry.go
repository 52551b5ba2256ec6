package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnavailable reports that the store stayed locked past the retry budget.
var ErrUnavailable = errors.New("store_unavailable")

// RetryPolicy bounds lock-contention retries. There is deliberately no
// backoff growth: a fixed bound with a fixed delay.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy mirrors the historical 5 × 150ms budget.
var DefaultRetryPolicy = RetryPolicy{Attempts: 5, Delay: 150 * time.Millisecond}

// IsLockedErr reports whether err is sqlite write-lock contention.
func IsLockedErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

// WithRetry runs fn, retrying on lock contention up to the policy bound.
// Any other error is returned immediately; exhausting the budget returns
// ErrUnavailable wrapping the last failure.
func WithRetry(ctx context.Context, log *zap.Logger, policy RetryPolicy, fn func() error) error {
	if policy.Attempts <= 0 {
		policy = DefaultRetryPolicy
	}

	var last error
	for attempt := 0; attempt < policy.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		last = fn()
		if last == nil {
			return nil
		}
		if !IsLockedErr(last) {
			return last
		}

		if log != nil {
			log.Warn("store locked, retrying",
				zap.Int("attempt", attempt+1),
				zap.Int("budget", policy.Attempts),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(policy.Delay):
		}
	}

	return errors.Join(ErrUnavailable, last)
}
