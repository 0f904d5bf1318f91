// Package ratelimit implements a trailing-window attempt counter on Redis.
// It backs abuse-sensitive actions such as supplier sign-up, contact
// messages and newsletter subscription. Transport-level IP limiting is
// handled separately by the router middleware.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at,omitzero"`
}

// Limiter counts attempts per identifier and action inside a trailing
// window. Attempts are stored as members of a Redis sorted set scored by
// their timestamp; expired attempts are trimmed on every check.
type Limiter struct {
	client *redis.Client
	now    func() time.Time
}

// NewLimiter constructs a Limiter using the wall clock.
func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func key(identifier, action string) string {
	return fmt.Sprintf("ratelimit:%s:%s", action, identifier)
}

// Check reports whether another attempt is allowed for identifier+action.
// When denied, ResetAt is the moment the oldest counted attempt leaves the
// window.
func (l *Limiter) Check(ctx context.Context, identifier, action string, limit int, window time.Duration) (Decision, error) {
	k := key(identifier, action)
	now := l.now()
	cutoff := now.Add(-window).UnixNano()

	if err := l.client.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return Decision{}, fmt.Errorf("ratelimit: trim: %w", err)
	}
	count, err := l.client.ZCard(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: count: %w", err)
	}
	if int(count) < limit {
		return Decision{Allowed: true, Remaining: limit - int(count)}, nil
	}

	oldest, err := l.client.ZRangeWithScores(ctx, k, 0, 0).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: oldest: %w", err)
	}
	resetAt := now.Add(window)
	if len(oldest) > 0 {
		resetAt = time.Unix(0, int64(oldest[0].Score)).Add(window)
	}
	return Decision{Allowed: false, ResetAt: resetAt}, nil
}

// Record registers one attempt for identifier+action. The backing key
// expires once no attempt inside the window remains.
func (l *Limiter) Record(ctx context.Context, identifier, action string, window time.Duration) error {
	k := key(identifier, action)
	now := l.now()
	if err := l.client.ZAdd(ctx, k, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	}).Err(); err != nil {
		return fmt.Errorf("ratelimit: record: %w", err)
	}
	if err := l.client.Expire(ctx, k, window).Err(); err != nil {
		return fmt.Errorf("ratelimit: expire: %w", err)
	}
	return nil
}

// Allow is a convenience that checks and, when allowed, records in one call.
func (l *Limiter) Allow(ctx context.Context, identifier, action string, limit int, window time.Duration) (Decision, error) {
	decision, err := l.Check(ctx, identifier, action, limit, window)
	if err != nil || !decision.Allowed {
		return decision, err
	}
	if err := l.Record(ctx, identifier, action, window); err != nil {
		return Decision{}, err
	}
	decision.Remaining--
	return decision, nil
}
