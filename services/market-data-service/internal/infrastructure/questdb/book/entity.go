package book

import (
	orderbook "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/orderbook/v1"
)

// Row is one order book delta. TimestampMs is normalized to milliseconds on read.
type Row struct {
	TimestampMs int64
	Action      int
	OrderID     int64
	Amount      float64
}

// ToEvent converts the row to a reconstructor input.
func (r Row) ToEvent() orderbook.Event {
	return orderbook.Event{
		TimestampMs: r.TimestampMs,
		Action:      orderbook.ParseAction(r.Action),
		OrderID:     r.OrderID,
		Amount:      r.Amount,
	}
}

// Events converts rows in order.
func Events(rows []Row) []orderbook.Event {
	events := make([]orderbook.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.ToEvent())
	}
	return events
}
