package messaging

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryConfig controls Retry backoff.
type RetryConfig struct {
	// Base is the first backoff interval. Defaults to 100ms.
	Base time.Duration
	// Cap bounds a single backoff interval. Defaults to 2s.
	Cap time.Duration
	// MaxRetries is the number of attempts after the first. Zero disables retries.
	MaxRetries uint64
}

// Retry wraps a Publisher and retries failed publishes with exponential
// backoff and jitter.
type Retry struct {
	next Publisher
	cfg  RetryConfig
}

// NewRetry wraps next.
func NewRetry(next Publisher, cfg RetryConfig) *Retry {
	if cfg.Base <= 0 {
		cfg.Base = 100 * time.Millisecond
	}
	if cfg.Cap <= 0 {
		cfg.Cap = 2 * time.Second
	}

	return &Retry{next: next, cfg: cfg}
}

func (r *Retry) backoff() retry.Backoff {
	b := retry.NewExponential(r.cfg.Base)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithCappedDuration(r.cfg.Cap, b)
	return retry.WithMaxRetries(r.cfg.MaxRetries, b)
}

// Publish forwards to the wrapped publisher. Closed publishers, missing
// destinations and context errors are not retried.
func (r *Retry) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	var res PublishResult
	attempt := 0

	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++

		var err error
		res, err = r.next.Publish(ctx, destination, msg)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}

		slog.WarnContext(ctx, "publish attempt failed", "destination", destination, "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})

	return res, err
}

// Close closes the wrapped publisher.
func (r *Retry) Close() error {
	return r.next.Close()
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrClosed),
		errors.Is(err, ErrDestinationRequired),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
