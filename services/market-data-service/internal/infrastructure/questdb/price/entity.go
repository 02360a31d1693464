package price

import (
	candle "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
)

// Row is one price update. TimestampMs is normalized to milliseconds on read.
type Row struct {
	ID          int64
	TimestampMs int64
	Price       float64
}

// ToTick converts the row to an aggregator input.
func (r Row) ToTick() candle.Tick {
	return candle.Tick{TimestampMs: r.TimestampMs, Price: r.Price}
}

// ToObservation converts the row to a synthesizer input.
func (r Row) ToObservation() trade.Observation {
	return trade.Observation{
		ID:           r.ID,
		TimestampSec: interval.MillisToSeconds(r.TimestampMs),
		Price:        r.Price,
	}
}

// Ticks converts rows in order.
func Ticks(rows []Row) []candle.Tick {
	ticks := make([]candle.Tick, 0, len(rows))
	for _, row := range rows {
		ticks = append(ticks, row.ToTick())
	}
	return ticks
}

// Observations converts rows in order.
func Observations(rows []Row) []trade.Observation {
	observations := make([]trade.Observation, 0, len(rows))
	for _, row := range rows {
		observations = append(observations, row.ToObservation())
	}
	return observations
}
