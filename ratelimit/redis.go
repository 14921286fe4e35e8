package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter backed by a shared Redis instance,
// for deployments running more than one process.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter allowing limit requests
// per window per key.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow increments the key's window counter, starting the window on the
// first request. INCR+EXPIRE keeps the check atomic enough for a
// best-effort limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	if count > int64(l.limit) {
		ttl, err := l.client.TTL(ctx, redisKey).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return Result{Allowed: false, RetryAfter: ttl}, nil
	}

	return Result{Allowed: true, Remaining: l.limit - int(count)}, nil
}
