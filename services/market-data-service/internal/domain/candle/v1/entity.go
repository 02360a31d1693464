package v1

// Tick is a single price observation from the row store.
type Tick struct {
	TimestampMs int64
	Price       float64
	// Volume is zero for price-only sources.
	Volume float64
}

// Candle is an OHLCV bar. Time is the bucket start in epoch seconds.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Point is a single indicator value at an epoch-second timestamp.
type Point struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// Update applies a price to the candle in place.
func (c *Candle) Update(price, volume float64) {
	if price > c.High {
		c.High = price
	}
	if price < c.Low {
		c.Low = price
	}
	c.Close = price
	c.Volume += volume
}

// NewCandle seeds a candle at bucket with open=high=low=close=price.
func NewCandle(bucket int64, price, volume float64) Candle {
	return Candle{
		Time:   bucket,
		Open:   price,
		High:   price,
		Low:    price,
		Close:  price,
		Volume: volume,
	}
}
