package v1

import (
	"math"
	"sort"

	"github.com/muhammadchandra19/exchange/pkg/errors"
)

func bucketStart(timestampSec, widthSec int64) int64 {
	rem := timestampSec % widthSec
	if rem < 0 {
		rem += widthSec
	}
	return timestampSec - rem
}

func floorMillis(ms int64) int64 {
	sec := ms / 1000
	if ms%1000 < 0 {
		sec--
	}
	return sec
}

func validWidth(widthSec int64) error {
	if widthSec <= 0 {
		return errors.NewMalformedInput("width", "bucket width must be positive, got %d", widthSec)
	}
	return nil
}

// Aggregate folds ticks sorted ascending by timestamp into one candle per populated
// bucket of widthSec seconds. Empty buckets are not synthesized; see FillGaps.
// Out-of-order, negative-timestamp or non-finite ticks fail with MalformedInput.
func Aggregate(ticks []Tick, widthSec int64) ([]Candle, error) {
	if err := validWidth(widthSec); err != nil {
		return nil, err
	}
	if len(ticks) == 0 {
		return []Candle{}, nil
	}

	candles := make([]Candle, 0, 16)
	var (
		current Candle
		open    bool
		prevTs  int64
	)

	for i, tick := range ticks {
		if tick.TimestampMs < 0 {
			return nil, errors.NewMalformedInput("ticks", "tick %d has negative timestamp %d", i, tick.TimestampMs)
		}
		if math.IsNaN(tick.Price) || math.IsInf(tick.Price, 0) {
			return nil, errors.NewMalformedInput("ticks", "tick %d has non-finite price", i)
		}
		if tick.Volume < 0 || math.IsNaN(tick.Volume) || math.IsInf(tick.Volume, 0) {
			return nil, errors.NewMalformedInput("ticks", "tick %d has invalid volume %v", i, tick.Volume)
		}
		if i > 0 && tick.TimestampMs < prevTs {
			return nil, errors.NewMalformedInput("ticks", "tick %d at %d precedes %d", i, tick.TimestampMs, prevTs)
		}
		prevTs = tick.TimestampMs

		bucket := bucketStart(floorMillis(tick.TimestampMs), widthSec)
		if !open || bucket != current.Time {
			if open {
				candles = append(candles, current)
			}
			current = NewCandle(bucket, tick.Price, tick.Volume)
			open = true
			continue
		}
		current.Update(tick.Price, tick.Volume)
	}

	return append(candles, current), nil
}

// SanitizeTicks drops ticks with non-finite prices, invalid volumes or negative timestamps and stable-sorts
// the rest ascending. It prepares untrusted rows for Aggregate.
func SanitizeTicks(ticks []Tick) []Tick {
	clean := make([]Tick, 0, len(ticks))
	for _, tick := range ticks {
		if tick.TimestampMs < 0 || math.IsNaN(tick.Price) || math.IsInf(tick.Price, 0) {
			continue
		}
		if tick.Volume < 0 || math.IsNaN(tick.Volume) || math.IsInf(tick.Volume, 0) {
			continue
		}
		clean = append(clean, tick)
	}

	sort.SliceStable(clean, func(i, j int) bool {
		return clean[i].TimestampMs < clean[j].TimestampMs
	})
	return clean
}

// FillGaps inserts flat candles at the previous close, with zero volume, for every
// missing bucket between the first candle and toSec (exclusive). Buckets before the
// first candle are left empty since there is no close to carry. fromSec trims leading
// candles that start before it.
func FillGaps(candles []Candle, widthSec, fromSec, toSec int64) ([]Candle, error) {
	if err := validWidth(widthSec); err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return []Candle{}, nil
	}

	from := bucketStart(fromSec, widthSec)
	filled := make([]Candle, 0, len(candles))
	var prev *Candle

	for i := range candles {
		c := candles[i]
		if c.Time < from {
			prev = &candles[i]
			continue
		}
		if prev != nil {
			start := prev.Time + widthSec
			if start < from {
				start = from
			}
			for t := start; t < c.Time; t += widthSec {
				filled = append(filled, flat(t, prev.Close))
			}
		}
		filled = append(filled, c)
		prev = &candles[i]
	}

	if prev != nil {
		start := prev.Time + widthSec
		if start < from {
			start = from
		}
		for t := start; t < toSec; t += widthSec {
			filled = append(filled, flat(t, prev.Close))
		}
	}

	return filled, nil
}

func flat(t int64, price float64) Candle {
	return NewCandle(t, price, 0)
}

// AggregateLast keeps, per bucket, the value that appears last in input order.
// Output is ascending by bucket.
func AggregateLast(points []Point, widthSec int64) ([]Point, error) {
	if err := validWidth(widthSec); err != nil {
		return nil, err
	}

	byBucket := make(map[int64]float64, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		byBucket[bucketStart(p.Time, widthSec)] = p.Value
	}

	out := make([]Point, 0, len(byBucket))
	for t, v := range byBucket {
		out = append(out, Point{Time: t, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// Last returns the trailing n candles. n <= 0 returns all of them.
func Last(candles []Candle, n int) []Candle {
	if n <= 0 || len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}
