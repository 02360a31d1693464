package delta

import (
	"context"

	liveDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/marketdata"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
)

// Source polls the row store through the trade deltas query.
type Source struct {
	usecase marketdata.Usecase
}

var _ liveDomain.Source = (*Source)(nil)

// NewSource creates a new delta source.
func NewSource(usecase marketdata.Usecase) *Source {
	return &Source{usecase: usecase}
}

// Fetch returns the fills recorded at or after sinceMs, oldest first. Trade deltas
// are exclusive of their watermark, hence the step back by one millisecond.
func (s *Source) Fetch(ctx context.Context, mkt market.Market, sinceMs int64, limit int) ([]trade.Fill, error) {
	deltas, err := s.usecase.GetTradeDeltas(ctx, mkt.ID, sinceMs-1, limit)
	if err != nil {
		return nil, err
	}
	return deltas.Trades, nil
}
