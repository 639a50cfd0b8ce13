package retrylimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), nil, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, Options{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond})

	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoStopsOnPermanentError(t *testing.T) {
	boom := errors.New("bad credentials")
	calls := 0
	err := Do(context.Background(), nil, func() error {
		calls++
		return &Permanent{Err: boom}
	}, Options{MaxAttempts: 5, InitialDelay: time.Millisecond})

	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Fatalf("permanent error retried %d times", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	boom := errors.New("down")
	attempts := []int{}
	err := Do(context.Background(), nil, func() error { return boom }, Options{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		OnRetry:      func(attempt int, _ error) { attempts = append(attempts, attempt) },
	})

	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if len(attempts) != 3 {
		t.Fatalf("retry callback fired %d times, want 3", len(attempts))
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, nil, func() error { return errors.New("transient") },
		Options{MaxAttempts: 5, InitialDelay: 50 * time.Millisecond})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestAdaptiveLimiterBounds(t *testing.T) {
	lim := NewAdaptiveLimiter(5, 1, 10, 1, 0.5)

	for i := 0; i < 20; i++ {
		lim.Failure()
	}
	if got := lim.Rate(); got != 1 {
		t.Fatalf("rate after failures = %v, want floor 1", got)
	}

	// Successes inside the post-failure grace window do not raise the rate.
	lim.Success()
	if got := lim.Rate(); got != 1 {
		t.Fatalf("rate grew during grace window: %v", got)
	}

	lim.lastError = time.Now().Add(-time.Minute)
	for i := 0; i < 20; i++ {
		lim.Success()
	}
	if got := lim.Rate(); got != 10 {
		t.Fatalf("rate after successes = %v, want ceiling 10", got)
	}
}
