package candle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/redis"
	candleDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
)

// RedisCache keeps candle query results as JSON strings with a TTL.
type RedisCache struct {
	client redis.Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates a new cache. The client prefixes keys itself.
func NewRedisCache(client redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// String renders the redis key of the query.
func (k CacheKey) String() string {
	fill := 0
	if k.FillGaps {
		fill = 1
	}
	return fmt.Sprintf("candles:%s:%s:%d:%d:%d:%d", k.Market, k.Period, k.FromSec, k.ToSec, k.Limit, fill)
}

// Get reads a cached result.
func (c *RedisCache) Get(ctx context.Context, key CacheKey) ([]candleDomain.Candle, bool, error) {
	raw, err := c.client.Get(ctx, key.String())
	if err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}

	var candles []candleDomain.Candle
	if err := json.Unmarshal([]byte(raw), &candles); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached candles: %w", err)
	}
	return candles, true, nil
}

// Set writes a result with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key CacheKey, candles []candleDomain.Candle) error {
	raw, err := json.Marshal(candles)
	if err != nil {
		return fmt.Errorf("failed to encode candles: %w", err)
	}
	return c.client.Set(ctx, key.String(), string(raw), c.ttl)
}
