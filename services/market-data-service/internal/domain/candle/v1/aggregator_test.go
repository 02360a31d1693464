package v1

import (
	"math"
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticksAt(pairs ...float64) []Tick {
	ticks := make([]Tick, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ticks = append(ticks, Tick{TimestampMs: int64(pairs[i] * 1000), Price: pairs[i+1]})
	}
	return ticks
}

func TestAggregate(t *testing.T) {
	testCases := []struct {
		name     string
		ticks    []Tick
		width    int64
		assertFn func(t *testing.T, candles []Candle, err error)
	}{
		{
			name:  "two buckets",
			ticks: ticksAt(0, 100, 30, 105, 61, 102),
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				require.NoError(t, err)
				assert.Equal(t, []Candle{
					{Time: 0, Open: 100, High: 105, Low: 100, Close: 105},
					{Time: 60, Open: 102, High: 102, Low: 102, Close: 102},
				}, candles)
			},
		},
		{
			name:  "empty input",
			ticks: nil,
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				require.NoError(t, err)
				assert.Empty(t, candles)
				assert.NotNil(t, candles)
			},
		},
		{
			name:  "single tick",
			ticks: ticksAt(125, 42.5),
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				require.NoError(t, err)
				assert.Equal(t, []Candle{{Time: 120, Open: 42.5, High: 42.5, Low: 42.5, Close: 42.5}}, candles)
			},
		},
		{
			name:  "identical timestamps",
			ticks: ticksAt(10, 5, 10, 7, 10, 3, 10, 6),
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				require.NoError(t, err)
				assert.Equal(t, []Candle{{Time: 0, Open: 5, High: 7, Low: 3, Close: 6}}, candles)
			},
		},
		{
			name:  "gap is not synthesized",
			ticks: ticksAt(0, 1, 200, 2),
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				require.NoError(t, err)
				require.Len(t, candles, 2)
				assert.Equal(t, int64(0), candles[0].Time)
				assert.Equal(t, int64(180), candles[1].Time)
			},
		},
		{
			name:  "boundary tick opens new bucket",
			ticks: []Tick{{TimestampMs: 59_999, Price: 1}, {TimestampMs: 60_000, Price: 2}},
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				require.NoError(t, err)
				require.Len(t, candles, 2)
				assert.Equal(t, int64(60), candles[1].Time)
			},
		},
		{
			name:  "volume bearing ticks",
			ticks: []Tick{{TimestampMs: 1000, Price: 10, Volume: 2}, {TimestampMs: 2000, Price: 11, Volume: 3}},
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				require.NoError(t, err)
				assert.Equal(t, 5.0, candles[0].Volume)
			},
		},
		{
			name:  "unsorted input",
			ticks: ticksAt(61, 1, 30, 2),
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
				assert.Nil(t, candles)
			},
		},
		{
			name:  "non-finite price",
			ticks: []Tick{{TimestampMs: 0, Price: 1}, {TimestampMs: 1, Price: math.NaN()}},
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
			},
		},
		{
			name:  "negative timestamp",
			ticks: []Tick{{TimestampMs: -5, Price: 1}},
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
			},
		},
		{
			name:  "negative volume",
			ticks: []Tick{{TimestampMs: 1000, Price: 10, Volume: 2}, {TimestampMs: 2000, Price: 11, Volume: -3}},
			width: 60,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
				assert.Nil(t, candles)
			},
		},
		{
			name:  "zero width",
			ticks: ticksAt(0, 1),
			width: 0,
			assertFn: func(t *testing.T, candles []Candle, err error) {
				assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			candles, err := Aggregate(tc.ticks, tc.width)
			tc.assertFn(t, candles, err)
		})
	}
}

func TestAggregate_Invariants(t *testing.T) {
	prices := []float64{100, 101.5, 99.25, 103, 97, 97, 110, 108.5, 100.01, 95, 96, 120, 119, 118.75}
	ticks := make([]Tick, 0, len(prices))
	for i, p := range prices {
		ticks = append(ticks, Tick{TimestampMs: int64(i*37_000 + 500), Price: p})
	}

	for _, width := range []int64{60, 300, 900, 3600} {
		candles, err := Aggregate(ticks, width)
		require.NoError(t, err)

		distinct := map[int64]struct{}{}
		for _, tick := range ticks {
			distinct[bucketStart(tick.TimestampMs/1000, width)] = struct{}{}
		}
		assert.LessOrEqual(t, len(candles), len(distinct))
		assert.LessOrEqual(t, len(candles), len(ticks))

		for i, c := range candles {
			assert.LessOrEqual(t, c.Low, math.Min(c.Open, c.Close))
			assert.LessOrEqual(t, math.Max(c.Open, c.Close), c.High)
			assert.Zero(t, c.Time%width)
			if i > 0 {
				assert.Greater(t, c.Time, candles[i-1].Time)
			}
		}

		again, err := Aggregate(ticks, width)
		require.NoError(t, err)
		assert.Equal(t, candles, again)
	}
}

func TestSanitizeTicks(t *testing.T) {
	ticks := []Tick{
		{TimestampMs: 3000, Price: 3},
		{TimestampMs: 1000, Price: math.Inf(1)},
		{TimestampMs: 1000, Price: 1},
		{TimestampMs: -1, Price: 9},
		{TimestampMs: 2000, Price: 2},
		{TimestampMs: 1000, Price: 1.5},
		{TimestampMs: 1500, Price: 4, Volume: -1},
	}

	clean := SanitizeTicks(ticks)
	assert.Equal(t, []Tick{
		{TimestampMs: 1000, Price: 1},
		{TimestampMs: 1000, Price: 1.5},
		{TimestampMs: 2000, Price: 2},
		{TimestampMs: 3000, Price: 3},
	}, clean)

	candles, err := Aggregate(clean, 60)
	require.NoError(t, err)
	assert.Equal(t, []Candle{{Time: 0, Open: 1, High: 3, Low: 1, Close: 3}}, candles)
}

func TestFillGaps(t *testing.T) {
	candles := []Candle{
		{Time: 60, Open: 10, High: 12, Low: 9, Close: 11, Volume: 1},
		{Time: 240, Open: 11, High: 13, Low: 10, Close: 12, Volume: 2},
	}

	testCases := []struct {
		name  string
		from  int64
		to    int64
		input []Candle
		want  []Candle
	}{
		{
			name:  "interior and trailing gaps",
			from:  0,
			to:    420,
			input: candles,
			want: []Candle{
				candles[0],
				{Time: 120, Open: 11, High: 11, Low: 11, Close: 11},
				{Time: 180, Open: 11, High: 11, Low: 11, Close: 11},
				candles[1],
				{Time: 300, Open: 12, High: 12, Low: 12, Close: 12},
				{Time: 360, Open: 12, High: 12, Low: 12, Close: 12},
			},
		},
		{
			name:  "leading candles before from are trimmed but carry close",
			from:  150,
			to:    300,
			input: candles,
			want: []Candle{
				{Time: 120, Open: 11, High: 11, Low: 11, Close: 11},
				{Time: 180, Open: 11, High: 11, Low: 11, Close: 11},
				candles[1],
			},
		},
		{
			name:  "nothing to fill",
			from:  60,
			to:    120,
			input: candles[:1],
			want:  candles[:1],
		},
		{
			name:  "empty",
			from:  0,
			to:    600,
			input: nil,
			want:  []Candle{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FillGaps(tc.input, 60, tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAggregateLast(t *testing.T) {
	points := []Point{
		{Time: 125, Value: 2},
		{Time: 10, Value: 1},
		{Time: 59, Value: 1.5},
		{Time: 130, Value: 2.5},
		{Time: 200, Value: math.NaN()},
	}

	got, err := AggregateLast(points, 60)
	require.NoError(t, err)
	assert.Equal(t, []Point{{Time: 0, Value: 1.5}, {Time: 120, Value: 2.5}}, got)
}

func TestLast(t *testing.T) {
	candles := []Candle{{Time: 0}, {Time: 60}, {Time: 120}}

	assert.Equal(t, []Candle{{Time: 60}, {Time: 120}}, Last(candles, 2))
	assert.Equal(t, candles, Last(candles, 5))
	assert.Equal(t, candles, Last(candles, 0))
}
