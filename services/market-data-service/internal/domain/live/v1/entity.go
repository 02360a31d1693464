package v1

import (
	candle "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
)

// CandleEvent is what subscribers receive for a (market, period) pair.
type CandleEvent struct {
	Market string        `json:"market"`
	Period string        `json:"period"`
	Candle candle.Candle `json:"candle"`
	// Final is true once the candle's bucket has closed.
	Final bool `json:"final"`
}

// Trade is one live trade delivered by a feed.
type Trade struct {
	Market       string
	TimestampSec int64
	Price        float64
	Amount       float64
}
