package price

import (
	"context"

	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
)

// PriceRepository reads the price_<market> tables. Bounds are epoch milliseconds,
// from inclusive and to exclusive.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type PriceRepository interface {
	// GetRange returns rows in [fromMs, toMs) oldest first, capped at the limit newest rows.
	GetRange(ctx context.Context, mkt market.Market, fromMs, toMs int64, limit int) ([]Row, error)
	// GetLatest returns rows in [fromMs, toMs) newest first, capped at limit.
	GetLatest(ctx context.Context, mkt market.Market, fromMs, toMs int64, limit int) ([]Row, error)
	// GetSince returns rows strictly after sinceMs oldest first, capped at limit.
	GetSince(ctx context.Context, mkt market.Market, sinceMs int64, limit int) ([]Row, error)
}
