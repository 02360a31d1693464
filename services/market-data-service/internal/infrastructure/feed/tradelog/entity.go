package tradelog

import (
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
)

// File is the on-disk trade log written by the trading bot.
type File struct {
	Trades []Entry `json:"trades"`
}

// Entry is one fill in the trade log. Market is optional; entries without one
// belong to the log's default market.
type Entry struct {
	Market    string  `json:"market,omitempty"`
	Timestamp int64   `json:"ts"`
	Price     float64 `json:"price"`
	Size      float64 `json:"size"`
	Direction string  `json:"dir"`
	Action    string  `json:"action,omitempty"`
}

// ToFill converts the entry to a trade fill. Unknown directions fall back to sell.
func (e Entry) ToFill() trade.Fill {
	side, err := trade.ParseSide(e.Direction)
	if err != nil {
		side = trade.SideSell
	}
	return trade.Fill{
		TimestampMs: e.Timestamp,
		Price:       e.Price,
		Amount:      e.Size,
		Side:        side,
	}
}
