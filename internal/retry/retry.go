package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Config defines a bounded exponential backoff policy
type Config struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultConfig returns the policy used for store calls
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     4,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2.0,
	}
}

// ErrorClassifier reports whether an error is worth retrying
type ErrorClassifier func(error) bool

// Notify is called before each wait with the error that caused it
type Notify func(err error, wait time.Duration)

// Do runs fn until it succeeds, returns an error the classifier rejects, the
// attempt budget is spent, or ctx is done. The last error from fn is
// returned; if ctx ends first the result wraps both the context's cause and
// that last error.
func Do(ctx context.Context, cfg Config, classify ErrorClassifier, fn func() error, notify Notify) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval
	if cfg.Multiplier > 0 {
		b.Multiplier = cfg.Multiplier
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
	}
	if notify != nil {
		opts = append(opts, backoff.WithNotify(backoff.Notify(notify)))
	}

	var last error
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := fn()
		last = err
		if err != nil && classify != nil && !classify(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, opts...)
	if err != nil && last != nil && !errors.Is(err, last) {
		return fmt.Errorf("%w: %w", err, last)
	}
	return err
}
