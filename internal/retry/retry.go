// Package retry re-runs an operation while it fails with an error the
// caller considers transient.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Predicate determines whether an error should be retried.
type Predicate func(error) bool

// Config controls retry behavior.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig suits short local contention such as a locked database
// file: a handful of quick attempts.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   50 * time.Millisecond,
		MaxDelay:    time.Second,
	}
}

// Do runs fn until it succeeds, returns an error shouldRetry rejects, or
// MaxAttempts is reached. A nil shouldRetry runs fn once. The last error
// from fn is returned, or ctx.Err() if ctx ends first.
func Do(ctx context.Context, config Config, shouldRetry Predicate, fn func() error) error {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if attempt == config.MaxAttempts || shouldRetry == nil || !shouldRetry(err) {
			return err
		}

		if !sleep(ctx, backoffDelay(config.BaseDelay, config.MaxDelay, attempt)) {
			return ctx.Err()
		}
	}

	return err
}

// backoffDelay doubles base per attempt, caps it at max, and picks a random
// delay up to that bound.
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	if attempt < 1 {
		attempt = 1
	}

	delay := base << (attempt - 1)
	if max > 0 && delay > max {
		delay = max
	}
	if delay <= 0 {
		return 0
	}
	return rand.N(delay + 1)
}

func sleep(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
