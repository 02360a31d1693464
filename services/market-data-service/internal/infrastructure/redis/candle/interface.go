package candle

import (
	"context"

	candleDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	live "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
)

// CacheKey identifies one candle query result. Zero bounds mean the caller left
// the range open.
type CacheKey struct {
	Market   string
	Period   string
	FromSec  int64
	ToSec    int64
	Limit    int
	FillGaps bool
}

// Cache stores candle query results for a short time.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Cache interface {
	// Get returns false on a miss.
	Get(ctx context.Context, key CacheKey) ([]candleDomain.Candle, bool, error)
	Set(ctx context.Context, key CacheKey, candles []candleDomain.Candle) error
}

// Publisher fans live candle events out to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event live.CandleEvent) error
}
