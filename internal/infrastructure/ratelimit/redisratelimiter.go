package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter keeps one sorted set per key and window, scoring members
// by request time. Counting the set after trimming expired members gives a
// sliding window rather than the coarse fixed buckets INCR would.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) RateLimiter {
	return &RedisRateLimiter{client: client}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := time.Now()

	windows := []struct {
		span  time.Duration
		limit int
	}{
		{time.Minute, config.RequestsPerMinute},
		{time.Hour, config.RequestsPerHour},
		{24 * time.Hour, config.RequestsPerDay},
	}

	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		ok, err := l.allowWindow(ctx, key, w.span, w.limit, now)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// allowWindow records the request in one window's set and checks the count
// that preceded it. The request is recorded even when over the limit, so
// hammering a blocked key keeps it blocked.
func (l *RedisRateLimiter) allowWindow(ctx context.Context, key string, span time.Duration, limit int, now time.Time) (bool, error) {
	setKey := l.windowKey(key, span)
	cutoff := now.Add(-span).UnixNano()
	stamp := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "0", fmt.Sprintf("%d", cutoff))
	used := pipe.ZCard(ctx, setKey)
	pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(stamp), Member: stamp})
	pipe.Expire(ctx, setKey, span+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to check rate limit window: %w", err)
	}

	return used.Val() < int64(limit), nil
}

func (l *RedisRateLimiter) Used(ctx context.Context, key string, window time.Duration) (int64, error) {
	setKey := l.windowKey(key, window)
	cutoff := time.Now().Add(-window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "0", fmt.Sprintf("%d", cutoff))
	used := pipe.ZCard(ctx, setKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count rate limit window: %w", err)
	}

	return used.Val(), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	pattern := fmt.Sprintf("ratelimit:%s:*", key)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan rate limit keys: %w", err)
	}

	return nil
}

func (l *RedisRateLimiter) windowKey(key string, span time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%s", key, span.String())
}
