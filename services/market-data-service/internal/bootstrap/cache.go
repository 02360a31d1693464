package bootstrap

import (
	candleCache "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/redis/candle"
)

// Cache holds the redis backed adapters. Both are nil when redis is disabled.
type Cache struct {
	CandleCache candleCache.Cache
	Publisher   candleCache.Publisher
}

// registerCache registers the cache.
func (b *Bootstrap) registerCache() {
	if b.Redis == nil {
		return
	}
	if b.Config.Query.CacheTTL > 0 {
		b.Cache.CandleCache = candleCache.NewRedisCache(b.Redis, b.Config.Query.CacheTTL)
	}
	b.Cache.Publisher = candleCache.NewRedisPublisher(b.Redis, b.Config.Live.ChannelPrefix)
}
