package ratelimit

import (
	"context"
	"time"
)

// Config bounds request rates for one key.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// RateLimiter limits request rates per key.
type RateLimiter interface {
	Allow(ctx context.Context, key string, config Config) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
