package marketdata

import (
	"context"

	candle "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	orderbook "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/orderbook/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
)

// CandleQuery selects candles. Zero From/To use the trailing period*limit window
// ending now; a zero Limit or Period uses the configured default.
type CandleQuery struct {
	Market   string
	Period   string
	FromSec  int64
	ToSec    int64
	Limit    int
	FillGaps bool
}

// CandleSeries is the result of GetCandles.
type CandleSeries struct {
	Market  string          `json:"market"`
	Period  string          `json:"period"`
	Candles []candle.Candle `json:"candles"`
	Count   int             `json:"count"`
}

// OrderbookView is the result of GetOrderbook.
type OrderbookView struct {
	Market string `json:"market"`
	orderbook.Snapshot
}

// TradeTape is the result of GetTrades, oldest first.
type TradeTape struct {
	Market string        `json:"market"`
	Period string        `json:"period"`
	Trades []trade.Trade `json:"trades"`
	Count  int           `json:"count"`
}

// ViewQuery selects everything a chart needs for one market.
type ViewQuery struct {
	Market string
	Period string
	Limit  int
	Depth  int
}

// MarketView bundles candles, book and tape fetched together.
type MarketView struct {
	Candles   *CandleSeries  `json:"candles"`
	Orderbook *OrderbookView `json:"orderbook"`
	Trades    *TradeTape     `json:"trades"`
}

// Usecase is the unified query surface over the row store.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	GetCandles(ctx context.Context, query CandleQuery) (*CandleSeries, error)
	GetOrderbook(ctx context.Context, marketID string, depth int) (*OrderbookView, error)
	GetTrades(ctx context.Context, marketID, period string, limit int) (*TradeTape, error)
	GetTradeDeltas(ctx context.Context, marketID string, sinceMs int64, limit int) (*trade.Deltas, error)
	GetMarketView(ctx context.Context, query ViewQuery) (*MarketView, error)
	Markets() market.Catalog
}
