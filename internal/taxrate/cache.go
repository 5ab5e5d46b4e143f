package taxrate

import (
	"context"
	"errors"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/pierogigo/internal/pricing"
)

const cacheKeyPrefix = "taxrate:"

// Cache decorates a rate source with a Redis TTL cache. Redis errors are
// treated as misses: the wrapped source remains the authority and the
// cache never turns a working source into a failing one.
type Cache struct {
	Source pricing.RateSource
	R      *redis.Client
	TTL    time.Duration
}

// Rate implements pricing.RateSource.
func (c Cache) Rate(ctx context.Context, kind string) (float64, error) {
	if c.Source == nil {
		return 0, errors.New("taxrate: cache has no source")
	}
	if c.R == nil || c.TTL <= 0 {
		return c.Source.Rate(ctx, kind)
	}

	key := cacheKeyPrefix + kind
	if raw, err := c.R.Get(ctx, key).Result(); err == nil {
		if rate, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
			recordLookup("cache_hit")
			return rate, nil
		}
	}

	rate, err := c.Source.Rate(ctx, kind)
	if err != nil {
		return 0, err
	}
	_ = c.R.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), c.TTL).Err()
	return rate, nil
}
