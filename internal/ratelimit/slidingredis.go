// Package ratelimit throttles the quote endpoints with a Redis-backed
// sliding window.
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter counts events per key in a sorted set scored by nanosecond
// timestamps. A nil client disables limiting entirely, which keeps the
// quote routes usable when Redis is not configured.
type Limiter struct {
	Client *redis.Client
	Prefix string
}

// Allow registers one event for key and reports whether the window still
// has room. The event is always recorded, so rejected requests keep
// pressing against the limit.
func (l Limiter) Allow(ctx context.Context, key string, window time.Duration, max int) (allowed bool, remaining int, reset time.Time, err error) {
	if l.Client == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}

	now := time.Now()
	reset = now.Add(window)
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	redisKey := l.Prefix + key
	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err = pipe.Exec(ctx); err != nil {
		return false, 0, reset, err
	}

	current := int(countCmd.Val())
	remaining = max - current
	if remaining < 0 {
		remaining = 0
	}
	return current <= max, remaining, reset, nil
}
