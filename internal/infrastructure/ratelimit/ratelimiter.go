// Package ratelimit throttles abuse-prone endpoints, the login and charge
// routes in particular. Limits are advisory: when the backing store is down
// the caller decides whether to fail open.
package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig caps a key per window. A zero limit disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

type RateLimiter interface {
	// Allow records one request for the key and reports whether it is
	// within every configured window.
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	// Used returns how many requests the key has spent in the window.
	Used(ctx context.Context, key string, window time.Duration) (int64, error)
	// Reset clears all windows recorded for the key.
	Reset(ctx context.Context, key string) error
}

// NoopRateLimiter allows everything. Used when Redis is disabled.
type NoopRateLimiter struct{}

func NewNoopRateLimiter() RateLimiter {
	return &NoopRateLimiter{}
}

func (NoopRateLimiter) Allow(context.Context, string, RateLimitConfig) (bool, error) {
	return true, nil
}

func (NoopRateLimiter) Used(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}

func (NoopRateLimiter) Reset(context.Context, string) error { return nil }
