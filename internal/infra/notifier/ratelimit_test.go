package notifier

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("allows request within rate limit", func(t *testing.T) {
		limiter := NewRateLimiter(10.0, 5)
		if err := limiter.Allow(context.Background()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("blocks request exceeding rate limit", func(t *testing.T) {
		limiter := NewRateLimiter(1.0, 1)
		ctx := context.Background()

		if err := limiter.Allow(ctx); err != nil {
			t.Fatalf("first request should succeed: %v", err)
		}

		ctxWithTimeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		if err := limiter.Allow(ctxWithTimeout); err == nil {
			t.Error("expected error once the bucket is drained")
		}
	})

	t.Run("handles burst requests immediately", func(t *testing.T) {
		limiter := NewRateLimiter(2.0, 5)
		ctx := context.Background()

		start := time.Now()
		for i := 0; i < 5; i++ {
			if err := limiter.Allow(ctx); err != nil {
				t.Fatalf("burst request %d failed: %v", i, err)
			}
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Errorf("burst took %v, want near-instant", elapsed)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		limiter := NewRateLimiter(0.1, 1)
		ctx, cancel := context.WithCancel(context.Background())

		_ = limiter.Allow(ctx) // drain the token

		cancel()
		err := limiter.Allow(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}
