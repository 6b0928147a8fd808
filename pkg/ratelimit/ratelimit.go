// Package ratelimit provides the fixed-window request limiter guarding
// the contact form against relay abuse.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow reports whether the request fits the window. Errors mean
	// the limiter backend is unavailable; callers choose whether to
	// fail open or closed.
	Allow(ctx context.Context, key string) (bool, error)
}

// Redis is a fixed-window limiter on Redis INCR/EXPIRE. Counters are
// shared across instances, so the limit holds behind a load balancer.
type Redis struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
	prefix string
}

// NewRedis creates a limiter allowing limit requests per window per key.
func NewRedis(client redis.UniversalClient, limit int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow implements Limiter.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit: incr: %w", err)
	}
	if count == 1 {
		// First hit opens the window.
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit: expire: %w", err)
		}
	}
	return count <= r.limit, nil
}

// Unlimited is a no-op limiter used when Redis is not configured.
type Unlimited struct{}

// Allow always permits the request.
func (Unlimited) Allow(context.Context, string) (bool, error) { return true, nil }
