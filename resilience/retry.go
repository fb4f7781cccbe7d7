package resilience

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/islam174932/EcommerceWeb/core"
)

// DefaultRetryConfig provides sensible defaults
func DefaultRetryConfig() *core.RetryConfig {
	return &core.RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// Retry executes a function with retry logic.
// Only use this for idempotent operations; cart and wishlist mutations
// must be sent exactly once and recover through the optimistic layer.
func Retry(ctx context.Context, config *core.RetryConfig, fn func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			// A non-retryable failure (auth, validation) will not improve
			// on a second attempt
			if !core.IsRetryable(err) {
				return err
			}
		}

		// Don't sleep after the last attempt
		if attempt == config.MaxAttempts {
			break
		}

		if attempt > 1 {
			delay = time.Duration(float64(delay) * config.BackoffFactor)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}

		// Jitter prevents synchronized retries across clients
		if config.JitterEnabled {
			jitter := time.Duration(float64(delay) * 0.1 * math.Sin(float64(attempt)))
			delay += jitter
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	// Both the sentinel and the last attempt's error stay in the chain so
	// callers can classify with errors.Is/As
	return fmt.Errorf("%w after %d attempts: %w", core.ErrMaxRetriesExceeded, config.MaxAttempts, lastErr)
}

// RetryWithCircuitBreaker combines retry logic with circuit breaker
func RetryWithCircuitBreaker(ctx context.Context, config *core.RetryConfig, cb *CircuitBreaker, fn func() error) error {
	return Retry(ctx, config, func() error {
		if !cb.CanExecute() {
			return core.ErrCircuitBreakerOpen
		}

		err := fn()
		if err != nil {
			cb.RecordFailure()
			return err
		}

		cb.RecordSuccess()
		return nil
	})
}
