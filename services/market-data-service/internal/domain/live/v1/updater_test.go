package v1

import (
	"math"
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	candle "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tradeInput struct {
	price  float64
	ts     int64
	amount float64
}

func TestUpdater_OnTrade(t *testing.T) {
	testCases := []struct {
		name     string
		trades   []tradeInput
		assertFn func(t *testing.T, u *Updater, last Update)
	}{
		{
			name:   "first trade opens",
			trades: []tradeInput{{price: 100, ts: 65, amount: 1}},
			assertFn: func(t *testing.T, u *Updater, last Update) {
				assert.Equal(t, StateOpen, u.State())
				assert.Equal(t, candle.Candle{Time: 60, Open: 100, High: 100, Low: 100, Close: 100, Volume: 1}, last.Forming)
				assert.Nil(t, last.Finalized)
			},
		},
		{
			name:   "same bucket updates in place",
			trades: []tradeInput{{100, 60, 1}, {110, 70, 2}, {95, 119, 0.5}},
			assertFn: func(t *testing.T, u *Updater, last Update) {
				forming, ok := u.Forming()
				require.True(t, ok)
				assert.Equal(t, candle.Candle{Time: 60, Open: 100, High: 110, Low: 95, Close: 95, Volume: 3.5}, forming)
			},
		},
		{
			name:   "rollover finalizes and reseeds",
			trades: []tradeInput{{100, 60, 1}, {101, 100, 1}, {99, 125, 4}},
			assertFn: func(t *testing.T, u *Updater, last Update) {
				require.NotNil(t, last.Finalized)
				assert.Equal(t, candle.Candle{Time: 60, Open: 100, High: 101, Low: 100, Close: 101, Volume: 2}, *last.Finalized)
				assert.Equal(t, candle.Candle{Time: 120, Open: 99, High: 99, Low: 99, Close: 99, Volume: 4}, last.Forming)
			},
		},
		{
			name:   "gap is not backfilled",
			trades: []tradeInput{{100, 60, 1}, {105, 300, 1}},
			assertFn: func(t *testing.T, u *Updater, last Update) {
				require.NotNil(t, last.Finalized)
				assert.Equal(t, int64(60), last.Finalized.Time)
				assert.Equal(t, int64(300), last.Forming.Time)
			},
		},
		{
			name:   "late trade is dropped",
			trades: []tradeInput{{100, 130, 1}, {1, 30, 9}},
			assertFn: func(t *testing.T, u *Updater, last Update) {
				assert.True(t, last.Dropped)
				assert.Equal(t, candle.Candle{Time: 120, Open: 100, High: 100, Low: 100, Close: 100, Volume: 1}, last.Forming)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := NewUpdater(interval.Interval1m)
			var last Update
			for _, tr := range tc.trades {
				var err error
				last, err = u.OnTrade(tr.price, tr.ts, tr.amount)
				require.NoError(t, err)
			}
			tc.assertFn(t, u, last)
		})
	}
}

func TestUpdater_OnTrade_Invalid(t *testing.T) {
	u := NewUpdater(interval.Interval1m)

	_, err := u.OnTrade(math.NaN(), 10, 1)
	assert.True(t, errors.IsKind(err, errors.KindMalformedInput))

	_, err = u.OnTrade(1, 10, math.Inf(1))
	assert.True(t, errors.IsKind(err, errors.KindMalformedInput))

	_, err = u.OnTrade(100, -30, 1)
	assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
	assert.Equal(t, StateEmpty, u.State())

	_, err = u.OnTrade(100, 10, 1)
	require.NoError(t, err)
	_, err = u.OnTrade(101, 20, -5)
	assert.True(t, errors.IsKind(err, errors.KindMalformedInput))

	forming, ok := u.Forming()
	require.True(t, ok)
	assert.Equal(t, candle.Candle{Time: 0, Open: 100, High: 100, Low: 100, Close: 100, Volume: 1}, forming)
}

func TestUpdater_InitFromHistory(t *testing.T) {
	history := []candle.Candle{
		{Time: 3600, Open: 1, High: 2, Low: 1, Close: 2, Volume: 5},
		{Time: 7200, Open: 2, High: 3, Low: 2, Close: 2.5, Volume: 7},
	}

	testCases := []struct {
		name    string
		history []candle.Candle
		now     int64
		want    candle.Candle
		wantOK  bool
	}{
		{
			name:    "adopts current bucket",
			history: history,
			now:     7300,
			want:    history[1],
			wantOK:  true,
		},
		{
			name:    "seeds from last close",
			history: history,
			now:     11_000,
			want:    candle.Candle{Time: 10_800, Open: 2.5, High: 2.5, Low: 2.5, Close: 2.5},
			wantOK:  true,
		},
		{
			name:    "empty history stays empty",
			history: nil,
			now:     11_000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := NewUpdater(interval.Interval1h)
			u.InitFromHistory(tc.history, tc.now)

			got, ok := u.Forming()
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}

	t.Run("adopted candle is a copy", func(t *testing.T) {
		u := NewUpdater(interval.Interval1h)
		local := append([]candle.Candle(nil), history...)
		u.InitFromHistory(local, 7300)

		_, err := u.OnTrade(10, 7400, 1)
		require.NoError(t, err)
		assert.Equal(t, 2.5, local[1].Close)
	})
}

func TestUpdater_Reset(t *testing.T) {
	u := NewUpdater(interval.Interval1m)
	_, err := u.OnTrade(1, 1, 1)
	require.NoError(t, err)

	u.Reset(interval.Interval5m)
	assert.Equal(t, StateEmpty, u.State())
	assert.Equal(t, interval.Interval5m, u.Interval())
	assert.Equal(t, "empty", u.State().String())
}
