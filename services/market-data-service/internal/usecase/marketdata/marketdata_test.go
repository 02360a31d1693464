package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	logger_mock "github.com/muhammadchandra19/exchange/pkg/logger/mock"
	candleDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/marketdata"
	orderbook "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/orderbook/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/book"
	bookMock "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/book/mock"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/price"
	priceMock "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/price/mock"
	candleCache "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/redis/candle"
	cacheMock "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/redis/candle/mock"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testConfig = config.QueryConfig{
	Timeout:         time.Second,
	OrderbookWindow: 1000,
	TickWindow:      100000,
	DefaultLimit:    100,
	DefaultDepth:    25,
	DefaultPeriod:   "1h",
	DeltaLimit:      500,
}

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

type fixture struct {
	prices *priceMock.MockPriceRepository
	books  *bookMock.MockBookRepository
	cache  *cacheMock.MockCache
}

func newFixture(t *testing.T) (*fixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	return &fixture{
		prices: priceMock.NewMockPriceRepository(ctrl),
		books:  bookMock.NewMockBookRepository(ctrl),
		cache:  cacheMock.NewMockCache(ctrl),
	}, ctrl
}

func TestUsecase_GetCandles(t *testing.T) {
	testCases := []struct {
		name     string
		query    marketdata.CandleQuery
		now      int64
		cache    bool
		mockFn   func(f *fixture)
		assertFn func(t *testing.T, result *marketdata.CandleSeries, err error)
	}{
		{
			name:  "aggregates default range",
			query: marketdata.CandleQuery{Market: "XBTUSD", Period: "1m", Limit: 3},
			now:   180,
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetRange(gomock.Any(), market.XBTUSD, int64(0), int64(180_000), 100000).Return([]price.Row{
					{ID: 1, TimestampMs: 0, Price: 100},
					{ID: 2, TimestampMs: 30_000, Price: 105},
					{ID: 3, TimestampMs: 61_000, Price: 102},
				}, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				require.NoError(t, err)
				assert.Equal(t, "xbtusd", result.Market)
				assert.Equal(t, "1m", result.Period)
				assert.Equal(t, []candleDomain.Candle{
					{Time: 0, Open: 100, High: 105, Low: 100, Close: 105},
					{Time: 60, Open: 102, High: 102, Low: 102, Close: 102},
				}, result.Candles)
				assert.Equal(t, 2, result.Count)
			},
		},
		{
			name:  "unordered rows are sorted and limit keeps the newest",
			query: marketdata.CandleQuery{Market: "ethusd", Period: "1m", FromSec: 1, ToSec: 600, Limit: 1},
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetRange(gomock.Any(), market.ETHUSD, int64(1_000), int64(600_000), 100000).Return([]price.Row{
					{TimestampMs: 125_000, Price: 3},
					{TimestampMs: 5_000, Price: 1},
					{TimestampMs: 65_000, Price: 2},
				}, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				require.NoError(t, err)
				assert.Equal(t, []candleDomain.Candle{{Time: 120, Open: 3, High: 3, Low: 3, Close: 3}}, result.Candles)
			},
		},
		{
			name:  "fills gaps on request",
			query: marketdata.CandleQuery{Market: "xbtusd", Period: "1m", FromSec: 60, ToSec: 300, Limit: 10, FillGaps: true},
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetRange(gomock.Any(), market.XBTUSD, int64(60_000), int64(300_000), 100000).Return([]price.Row{
					{TimestampMs: 61_000, Price: 10},
				}, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				require.NoError(t, err)
				require.Len(t, result.Candles, 4)
				assert.Equal(t, candleDomain.Candle{Time: 240, Open: 10, High: 10, Low: 10, Close: 10}, result.Candles[3])
			},
		},
		{
			name:  "default period and limit",
			query: marketdata.CandleQuery{Market: "solusd"},
			now:   1_000_000,
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetRange(gomock.Any(), market.SOLUSD, int64(1_000_000-3600*100)*1000, int64(1_000_000_000), 100000).Return(nil, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				require.NoError(t, err)
				assert.Equal(t, "1h", result.Period)
				assert.Empty(t, result.Candles)
			},
		},
		{
			name:   "unsupported market",
			query:  marketdata.CandleQuery{Market: "btcusdt", Period: "1m"},
			mockFn: func(f *fixture) {},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindUnsupportedMarket))
				assert.Nil(t, result)
			},
		},
		{
			name:   "unsupported period",
			query:  marketdata.CandleQuery{Market: "xbtusd", Period: "30m"},
			mockFn: func(f *fixture) {},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindUnsupportedPeriod))
			},
		},
		{
			name:   "inverted range",
			query:  marketdata.CandleQuery{Market: "xbtusd", Period: "1m", FromSec: 600, ToSec: 60},
			mockFn: func(f *fixture) {},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindMalformedInput))
			},
		},
		{
			name:  "row store failure",
			query: marketdata.CandleQuery{Market: "xbtusd", Period: "1m", ToSec: 600},
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, context.DeadlineExceeded)
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindDataSourceUnavailable))
				assert.ErrorIs(t, err, context.DeadlineExceeded)
				assert.Nil(t, result)
			},
		},
		{
			name:  "cache hit skips the row store",
			query: marketdata.CandleQuery{Market: "xbtusd", Period: "1m", FromSec: 60, ToSec: 120, Limit: 10},
			cache: true,
			mockFn: func(f *fixture) {
				key := candleCache.CacheKey{Market: "xbtusd", Period: "1m", FromSec: 60, ToSec: 120, Limit: 10}
				f.cache.EXPECT().Get(gomock.Any(), key).Return([]candleDomain.Candle{{Time: 60, Close: 1}}, true, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				require.NoError(t, err)
				assert.Equal(t, []candleDomain.Candle{{Time: 60, Close: 1}}, result.Candles)
			},
		},
		{
			name:  "open range keys on the request not the clock",
			query: marketdata.CandleQuery{Market: "xbtusd", Period: "1m", Limit: 10},
			now:   1_000_123,
			cache: true,
			mockFn: func(f *fixture) {
				key := candleCache.CacheKey{Market: "xbtusd", Period: "1m", Limit: 10}
				f.cache.EXPECT().Get(gomock.Any(), key).Return([]candleDomain.Candle{{Time: 1_000_080, Close: 2}}, true, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Count)
			},
		},
		{
			name:  "cache failures are bypassed",
			query: marketdata.CandleQuery{Market: "xbtusd", Period: "1m", FromSec: 0, ToSec: 120, Limit: 10},
			cache: true,
			mockFn: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
				f.prices.EXPECT().GetRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]price.Row{{TimestampMs: 61_000, Price: 7}}, nil)
				f.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			assertFn: func(t *testing.T, result *marketdata.CandleSeries, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Count)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, ctrl := newFixture(t)
			defer ctrl.Finish()
			tc.mockFn(f)

			opts := []Option{WithClock(fixedClock(tc.now))}
			if tc.cache {
				opts = append(opts, WithCache(f.cache))
			}
			u := NewUsecase(f.prices, f.books, testConfig, logger.NewNop(), opts...)

			result, err := u.GetCandles(context.Background(), tc.query)
			tc.assertFn(t, result, err)
		})
	}
}

func TestUsecase_GetOrderbook(t *testing.T) {
	testCases := []struct {
		name     string
		market   string
		depth    int
		mockFn   func(f *fixture)
		assertFn func(t *testing.T, result *marketdata.OrderbookView, err error)
	}{
		{
			name:   "replays newest-first window",
			market: "xbtusd",
			depth:  5,
			mockFn: func(f *fixture) {
				f.books.EXPECT().GetRecent(gomock.Any(), market.XBTUSD, 1000).Return([]book.Row{
					{TimestampMs: 3_000, Action: 0, OrderID: 100},
					{TimestampMs: 2_000, Action: 1, OrderID: 90, Amount: 3},
					{TimestampMs: 1_000, Action: 1, OrderID: 100, Amount: 5},
				}, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.OrderbookView, err error) {
				require.NoError(t, err)
				assert.Equal(t, "xbtusd", result.Market)
				assert.Equal(t, []orderbook.Level{{Price: 90, Amount: 3}}, result.Bids)
				assert.Empty(t, result.Asks)
				assert.Equal(t, int64(3), result.Timestamp)
			},
		},
		{
			name:   "default depth",
			market: "dogeusd",
			depth:  0,
			mockFn: func(f *fixture) {
				rows := make([]book.Row, 0, 40)
				for i := 0; i < 40; i++ {
					rows = append(rows, book.Row{TimestampMs: int64(i), Action: 1, OrderID: int64(i + 1), Amount: -1})
				}
				f.books.EXPECT().GetRecent(gomock.Any(), market.DOGEUSD, 1000).Return(rows, nil)
			},
			assertFn: func(t *testing.T, result *marketdata.OrderbookView, err error) {
				require.NoError(t, err)
				assert.Len(t, result.Asks, 25)
				assert.Equal(t, 1.0, result.Asks[0].Price)
			},
		},
		{
			name:   "row store failure",
			market: "xbtusd",
			depth:  5,
			mockFn: func(f *fixture) {
				f.books.EXPECT().GetRecent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("refused"))
			},
			assertFn: func(t *testing.T, result *marketdata.OrderbookView, err error) {
				assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindDataSourceUnavailable))
			},
		},
		{
			name:   "unsupported market",
			market: "nope",
			mockFn: func(f *fixture) {},
			assertFn: func(t *testing.T, result *marketdata.OrderbookView, err error) {
				assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindUnsupportedMarket))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, ctrl := newFixture(t)
			defer ctrl.Finish()
			tc.mockFn(f)

			u := NewUsecase(f.prices, f.books, testConfig, logger.NewNop())
			result, err := u.GetOrderbook(context.Background(), tc.market, tc.depth)
			tc.assertFn(t, result, err)
		})
	}
}

func TestUsecase_GetTrades(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	f.prices.EXPECT().GetLatest(gomock.Any(), market.XRPUSD, int64(10_000-60)*1000, int64(10_000_000), 50).Return([]price.Row{
		{ID: 3, TimestampMs: 9_990_000, Price: 9},
		{ID: 2, TimestampMs: 9_980_000, Price: 12},
		{ID: 1, TimestampMs: 9_970_000, Price: 10},
	}, nil)

	u := NewUsecase(f.prices, f.books, testConfig, logger.NewNop(), WithClock(fixedClock(10_000)))
	tape, err := u.GetTrades(context.Background(), "xrpusd", "1m", 50)
	require.NoError(t, err)

	assert.Equal(t, []trade.Trade{
		{ID: 1, Timestamp: 9_970, Price: 10, Side: trade.SideBuy},
		{ID: 2, Timestamp: 9_980, Price: 12, Side: trade.SideSell},
		{ID: 3, Timestamp: 9_990, Price: 9, Side: trade.SideSell},
	}, tape.Trades)
	assert.Equal(t, 3, tape.Count)
	assert.Equal(t, "1m", tape.Period)
}

func TestUsecase_GetTradeDeltas(t *testing.T) {
	testCases := []struct {
		name     string
		since    int64
		limit    int
		mockFn   func(f *fixture)
		assertFn func(t *testing.T, deltas *trade.Deltas, err error)
	}{
		{
			name:  "since watermark",
			since: 1_000,
			limit: 10,
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetSince(gomock.Any(), market.XBTUSD, int64(1_000), 10).Return([]price.Row{
					{TimestampMs: 1_500, Price: 1},
					{TimestampMs: 2_500, Price: 2},
				}, nil)
			},
			assertFn: func(t *testing.T, deltas *trade.Deltas, err error) {
				require.NoError(t, err)
				assert.Equal(t, []trade.Fill{
					{TimestampMs: 1_500, Price: 1, Side: trade.SideBuy},
					{TimestampMs: 2_500, Price: 2, Side: trade.SideSell},
				}, deltas.Trades)
				assert.Equal(t, int64(2_500), deltas.LatestTimestamp)
			},
		},
		{
			name:  "nothing new keeps the watermark",
			since: 5_000,
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetSince(gomock.Any(), market.XBTUSD, int64(5_000), 500).Return(nil, nil)
			},
			assertFn: func(t *testing.T, deltas *trade.Deltas, err error) {
				require.NoError(t, err)
				assert.Empty(t, deltas.Trades)
				assert.NotNil(t, deltas.Trades)
				assert.Equal(t, int64(5_000), deltas.LatestTimestamp)
			},
		},
		{
			name:  "initial load returns most recent oldest first",
			since: 0,
			limit: 2,
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetLatest(gomock.Any(), market.XBTUSD, int64(0), int64(50_001), 2).Return([]price.Row{
					{TimestampMs: 40_000, Price: 4},
					{TimestampMs: 30_000, Price: 3},
				}, nil)
			},
			assertFn: func(t *testing.T, deltas *trade.Deltas, err error) {
				require.NoError(t, err)
				require.Len(t, deltas.Trades, 2)
				assert.Equal(t, int64(30_000), deltas.Trades[0].TimestampMs)
				assert.Equal(t, trade.SideBuy, deltas.Trades[0].Side)
				assert.Equal(t, int64(40_000), deltas.LatestTimestamp)
			},
		},
		{
			name:  "row store failure",
			since: 1,
			mockFn: func(f *fixture) {
				f.prices.EXPECT().GetSince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			assertFn: func(t *testing.T, deltas *trade.Deltas, err error) {
				assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindDataSourceUnavailable))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, ctrl := newFixture(t)
			defer ctrl.Finish()
			tc.mockFn(f)

			u := NewUsecase(f.prices, f.books, testConfig, logger.NewNop(), WithClock(fixedClock(50)))
			deltas, err := u.GetTradeDeltas(context.Background(), "xbtusd", tc.since, tc.limit)
			tc.assertFn(t, deltas, err)
		})
	}
}

func TestUsecase_GetMarketView(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.prices.EXPECT().GetRange(gomock.Any(), market.XBTUSD, gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]price.Row{{TimestampMs: 3_599_000, Price: 1}}, nil)
		f.books.EXPECT().GetRecent(gomock.Any(), market.XBTUSD, 1000).Return(nil, nil)
		f.prices.EXPECT().GetLatest(gomock.Any(), market.XBTUSD, gomock.Any(), gomock.Any(), 10).
			Return([]price.Row{{ID: 1, TimestampMs: 3_599_000, Price: 1}}, nil)

		u := NewUsecase(f.prices, f.books, testConfig, logger.NewNop(), WithClock(fixedClock(3_600)))
		view, err := u.GetMarketView(context.Background(), marketdata.ViewQuery{Market: "xbtusd", Period: "1h", Limit: 10, Depth: 5})
		require.NoError(t, err)

		assert.Equal(t, 1, view.Candles.Count)
		assert.Empty(t, view.Orderbook.Bids)
		assert.Equal(t, 1, view.Trades.Count)
	})

	t.Run("first failure wins", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.prices.EXPECT().GetRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		f.books.EXPECT().GetRecent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))
		f.prices.EXPECT().GetLatest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		u := NewUsecase(f.prices, f.books, testConfig, logger.NewNop(), WithClock(fixedClock(3_600)))
		view, err := u.GetMarketView(context.Background(), marketdata.ViewQuery{Market: "xbtusd", Period: "1h"})
		assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindDataSourceUnavailable))
		assert.Nil(t, view)
	})

	t.Run("validates before querying", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		u := NewUsecase(f.prices, f.books, testConfig, logger.NewNop())
		_, err := u.GetMarketView(context.Background(), marketdata.ViewQuery{Market: "xbtusd", Period: "2h"})
		assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindUnsupportedPeriod))
	})
}

func TestUsecase_LogsDataSourceErrors(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	log := logger_mock.NewMockInterface(ctrl)
	cause := errors.New("refused")
	f.books.EXPECT().GetRecent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, cause)
	log.EXPECT().ErrorContext(gomock.Any(), cause,
		logger.NewField("action", "get_orderbook"),
		logger.NewField("market", "ethusd"),
	)

	u := NewUsecase(f.prices, f.books, testConfig, log)
	_, err := u.GetOrderbook(context.Background(), "ethusd", 10)
	assert.ErrorIs(t, err, cause)
}

func TestUsecase_Markets(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	catalog := NewUsecase(f.prices, f.books, testConfig, logger.NewNop()).Markets()
	assert.Equal(t, []string{"xbtusd", "ethusd", "solusd", "xrpusd", "dogeusd"}, catalog.Markets)
	assert.Equal(t, []string{"1m", "5m", "15m", "1h", "4h", "1d", "1w"}, catalog.Periods)
	assert.Equal(t, int64(604800), catalog.PeriodSeconds["1w"])
}
