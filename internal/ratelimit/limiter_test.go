package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T) (*Limiter, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLimiter(client).WithClock(func() time.Time { return now })
	return limiter, &now
}

func TestCheckAllowsUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	decision, err := limiter.Check(ctx, "user@example.com", "signup", 3, 10*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected fresh identifier to be allowed")
	}
	if decision.Remaining != 3 {
		t.Fatalf("expected 3 remaining, got %d", decision.Remaining)
	}
}

func TestDeniesAtLimitWithFutureReset(t *testing.T) {
	limiter, now := newTestLimiter(t)
	ctx := context.Background()
	window := 10 * time.Minute

	for i := 0; i < 3; i++ {
		if err := limiter.Record(ctx, "user@example.com", "signup", window); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	decision, err := limiter.Check(ctx, "user@example.com", "signup", 3, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("expected denial after limit reached")
	}
	if !decision.ResetAt.After(*now) {
		t.Fatalf("expected ResetAt in the future, got %v (now %v)", decision.ResetAt, *now)
	}
}

func TestAllowsAgainAfterWindowElapses(t *testing.T) {
	limiter, now := newTestLimiter(t)
	ctx := context.Background()
	window := 10 * time.Minute

	for i := 0; i < 3; i++ {
		if err := limiter.Record(ctx, "user@example.com", "signup", window); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if d, _ := limiter.Check(ctx, "user@example.com", "signup", 3, window); d.Allowed {
		t.Fatalf("expected denial inside window")
	}

	*now = now.Add(window + time.Second)

	decision, err := limiter.Check(ctx, "user@example.com", "signup", 3, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected attempts to expire with the window")
	}
}

func TestIdentifiersAndActionsAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()
	window := 5 * time.Minute

	for i := 0; i < 2; i++ {
		if err := limiter.Record(ctx, "a@example.com", "contact", window); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if d, _ := limiter.Check(ctx, "a@example.com", "contact", 2, window); d.Allowed {
		t.Fatalf("expected a@example.com to be limited")
	}
	if d, _ := limiter.Check(ctx, "b@example.com", "contact", 2, window); !d.Allowed {
		t.Fatalf("expected b@example.com to be unaffected")
	}
	if d, _ := limiter.Check(ctx, "a@example.com", "signup", 2, window); !d.Allowed {
		t.Fatalf("expected other actions to be unaffected")
	}
}

func TestAllowRecordsAttempt(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()
	window := 5 * time.Minute

	for i := 0; i < 2; i++ {
		decision, err := limiter.Allow(ctx, "c@example.com", "review", 2, window)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !decision.Allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
	}
	decision, err := limiter.Allow(ctx, "c@example.com", "review", 2, window)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("third attempt should be denied")
	}
}
