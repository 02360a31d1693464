package v1

import (
	"context"

	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
)

// Source is a pull-based trade feed.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Source interface {
	// Fetch returns up to limit fills at or after sinceMs, oldest first. Fills sharing
	// a millisecond must come back in the same order on every call.
	Fetch(ctx context.Context, mkt market.Market, sinceMs int64, limit int) ([]trade.Fill, error)
}

// Notifier wakes a poller before its next tick, e.g. when a file changed.
type Notifier interface {
	Notify() <-chan struct{}
}

// Dispatcher accepts live trades.
type Dispatcher interface {
	OnTrade(t Trade)
}
