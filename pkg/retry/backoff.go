package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Config holds the exponential backoff settings for one retried operation.
type Config struct {
	// MaxRetries is the number of retries after the first attempt; -1 retries forever.
	MaxRetries int

	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Multiplier grows the backoff after each retry, 2.0 when unset.
	Multiplier float64

	// Jitter spreads each backoff by up to 25% either way.
	Jitter bool
}

// Operation is retried until it returns nil, a permanent error, or retries run out.
type Operation func(ctx context.Context) error

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying, e.g. a 4xx answer from a chat webhook.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// WithExponentialBackoff runs op until it succeeds. It gives up when retries are
// exhausted, when op returns a Permanent error, or when ctx is done.
func WithExponentialBackoff(ctx context.Context, cfg Config, op Operation) error {
	var attempt int

	for {
		attempt++

		err := op(ctx)
		if err == nil {
			return nil
		}

		var p *permanentError
		if errors.As(err, &p) {
			return fmt.Errorf("operation failed permanently after %d attempts: %w", attempt, p.err)
		}

		if cfg.MaxRetries >= 0 && attempt > cfg.MaxRetries {
			return fmt.Errorf("operation failed after %d attempts: %w", attempt, err)
		}

		timer := time.NewTimer(calculateBackoff(attempt, cfg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("operation canceled after %d attempts: %w", attempt, ctx.Err())
		case <-timer.C:
		}
	}
}

// calculateBackoff returns InitialBackoff * Multiplier^(retry-1), capped at MaxBackoff.
func calculateBackoff(retryNumber int, cfg Config) time.Duration {
	if retryNumber <= 0 {
		return 0
	}

	multiplier := cfg.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}

	backoff := float64(cfg.InitialBackoff) * math.Pow(multiplier, float64(retryNumber-1))
	if cfg.MaxBackoff > 0 && backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}

	duration := time.Duration(backoff)

	if cfg.Jitter {
		jitterRange := float64(duration) * 0.25
		duration = time.Duration(float64(duration) + (rand.Float64()*2-1)*jitterRange)

		if cfg.MaxBackoff > 0 && duration > cfg.MaxBackoff {
			duration = cfg.MaxBackoff
		}
		if duration < 0 {
			duration = 0
		}
	}

	return duration
}
