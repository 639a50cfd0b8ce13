// Package retrylimit pairs an adaptive rate limiter with exponential-backoff
// retries, for polling remote services that throttle under load. The limiter
// speeds up while requests succeed and backs off when they fail.
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdaptiveLimiter adjusts its requests-per-second rate from request
// outcomes. Safe for concurrent use.
type AdaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min       rate.Limit
	max       rate.Limit
	stepUp    rate.Limit
	backoff   float64
	lastError time.Time
}

// NewAdaptiveLimiter builds a limiter that starts at initial rps, never
// leaves [min, max], grows by stepUp per success and multiplies by backoff
// on failure.
func NewAdaptiveLimiter(initial, min, max, stepUp rate.Limit, backoff float64) *AdaptiveLimiter {
	if min < 1 {
		min = 1
	}
	if initial < min {
		initial = min
	}
	burst := int(initial)
	if burst < 1 {
		burst = 1
	}
	return &AdaptiveLimiter{
		limiter: rate.NewLimiter(initial, burst),
		min:     min,
		max:     max,
		stepUp:  stepUp,
		backoff: backoff,
	}
}

// Wait blocks until a request slot is available or ctx ends.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// Success nudges the rate up, unless a failure happened in the last few
// seconds.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.setLimit(a.limiter.Limit() + a.stepUp)
	}
}

// Failure cuts the rate.
func (a *AdaptiveLimiter) Failure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.setLimit(rate.Limit(float64(a.limiter.Limit()) * a.backoff))
}

// Rate returns the current requests per second.
func (a *AdaptiveLimiter) Rate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.limiter.Limit())
}

func (a *AdaptiveLimiter) setLimit(l rate.Limit) {
	if l > a.max {
		l = a.max
	}
	if l < a.min {
		l = a.min
	}
	if l == a.limiter.Limit() {
		return
	}
	a.limiter.SetLimit(l)
	burst := int(l)
	if burst < 1 {
		burst = 1
	}
	a.limiter.SetBurst(burst)
}

// Permanent wraps an error that must not be retried.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string { return p.Err.Error() }
func (p *Permanent) Unwrap() error { return p.Err }

// Options configures Do.
type Options struct {
	MaxAttempts  int           // 0 falls back to 5
	InitialDelay time.Duration // 0 falls back to 500ms
	MaxDelay     time.Duration // 0 falls back to 10s
	OnRetry      func(attempt int, err error)
}

// Do runs fn under the limiter, retrying with jittered exponential backoff.
// It stops on success, on a Permanent error, when ctx ends, or when the
// attempt budget runs out.
func Do(ctx context.Context, lim *AdaptiveLimiter, fn func() error, opts Options) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 10 * time.Second
	}

	delay := opts.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return err
			}
		}

		err := fn()
		if err == nil {
			if lim != nil {
				lim.Success()
			}
			return nil
		}
		lastErr = err

		var perm *Permanent
		if errors.As(err, &perm) {
			return perm.Err
		}
		if lim != nil {
			lim.Failure()
		}
		if opts.OnRetry != nil {
			opts.OnRetry(attempt, err)
		}
		if attempt == opts.MaxAttempts {
			break
		}

		// 0-25% jitter keeps synchronized pollers from stampeding.
		sleep := delay + time.Duration(rand.Int63n(int64(delay/4)+1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}

		delay *= 2
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", opts.MaxAttempts, lastErr)
}
