package marketdata

import (
	"context"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/pkg/util"
	candleDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/marketdata"
	orderbook "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/orderbook/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/book"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/price"
	candleCache "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/redis/candle"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
	"golang.org/x/sync/errgroup"
)

// Usecase is the unified query facade. It is stateless per call and safe for
// concurrent use.
type Usecase struct {
	priceRepository price.PriceRepository
	bookRepository  book.BookRepository
	reconstructor   orderbook.Reconstructor
	synthesizer     trade.Synthesizer
	cache           candleCache.Cache
	config          config.QueryConfig
	logger          logger.Interface
	now             func() time.Time
}

var _ marketdata.Usecase = (*Usecase)(nil)

// Option customizes a Usecase.
type Option func(*Usecase)

// WithCache enables the candle cache.
func WithCache(cache candleCache.Cache) Option {
	return func(u *Usecase) {
		u.cache = cache
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

// WithReconstructor replaces the order book heuristic.
func WithReconstructor(r orderbook.Reconstructor) Option {
	return func(u *Usecase) {
		u.reconstructor = r
	}
}

// WithSynthesizer replaces the trade side heuristic.
func WithSynthesizer(s trade.Synthesizer) Option {
	return func(u *Usecase) {
		u.synthesizer = s
	}
}

// NewUsecase creates a new market data usecase.
func NewUsecase(
	priceRepository price.PriceRepository,
	bookRepository book.BookRepository,
	cfg config.QueryConfig,
	logger logger.Interface,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		priceRepository: priceRepository,
		bookRepository:  bookRepository,
		reconstructor:   orderbook.NewSignedAmountReconstructor(),
		synthesizer:     trade.NewNextPriceSynthesizer(),
		config:          cfg,
		logger:          logger,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) resolve(marketID, period string) (market.Market, interval.Interval, error) {
	mkt, err := market.Lookup(marketID)
	if err != nil {
		return market.Market{}, interval.Interval{}, err
	}
	if period == "" {
		period = u.config.DefaultPeriod
	}
	iv, err := interval.GetInterval(period)
	if err != nil {
		return market.Market{}, interval.Interval{}, err
	}
	return mkt, iv, nil
}

func (u *Usecase) unavailable(ctx context.Context, action string, mkt market.Market, err error) error {
	u.logger.ErrorContext(ctx, err,
		logger.NewField("action", action),
		logger.NewField("market", mkt.ID),
	)
	return errors.NewDataSourceUnavailable(action, err)
}

// GetCandles aggregates raw ticks of the requested range into candles and keeps
// the limit most recent ones.
func (u *Usecase) GetCandles(ctx context.Context, query marketdata.CandleQuery) (*marketdata.CandleSeries, error) {
	ctx = util.EnsureRequestID(ctx)

	mkt, iv, err := u.resolve(query.Market, query.Period)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = u.config.DefaultLimit
	}

	to := query.ToSec
	if to == 0 {
		to = u.now().Unix()
	}
	from := query.FromSec
	if from == 0 {
		from = to - iv.Seconds*int64(limit)
	}
	if from > to {
		return nil, errors.NewMalformedInput("range", "range start %d is after end %d", from, to)
	}

	// An open range keys on the request rather than the clock, so default queries
	// share an entry for the cache TTL.
	key := candleCache.CacheKey{
		Market:   mkt.ID,
		Period:   iv.Name,
		FromSec:  query.FromSec,
		ToSec:    query.ToSec,
		Limit:    limit,
		FillGaps: query.FillGaps,
	}
	if candles, ok := u.cached(ctx, key); ok {
		return series(mkt, iv, candles), nil
	}

	queryCtx, cancel := questdb.WithQueryTimeout(ctx, u.config.Timeout)
	defer cancel()

	rows, err := u.priceRepository.GetRange(queryCtx, mkt, from*1000, to*1000, u.config.TickWindow)
	if err != nil {
		return nil, u.unavailable(ctx, "get_candles", mkt, err)
	}

	candles, err := candleDomain.Aggregate(candleDomain.SanitizeTicks(price.Ticks(rows)), iv.Seconds)
	if err != nil {
		return nil, err
	}
	if query.FillGaps {
		if candles, err = candleDomain.FillGaps(candles, iv.Seconds, from, to); err != nil {
			return nil, err
		}
	}
	candles = candleDomain.Last(candles, limit)

	u.store(ctx, key, candles)

	u.logger.DebugContext(ctx, "candles served",
		logger.NewField("market", mkt.ID),
		logger.NewField("period", iv.Name),
		logger.NewField("ticks", len(rows)),
		logger.NewField("count", len(candles)),
	)

	return series(mkt, iv, candles), nil
}

func series(mkt market.Market, iv interval.Interval, candles []candleDomain.Candle) *marketdata.CandleSeries {
	return &marketdata.CandleSeries{
		Market:  mkt.ID,
		Period:  iv.Name,
		Candles: candles,
		Count:   len(candles),
	}
}

// Cache failures are logged and bypassed.
func (u *Usecase) cached(ctx context.Context, key candleCache.CacheKey) ([]candleDomain.Candle, bool) {
	if u.cache == nil {
		return nil, false
	}
	candles, ok, err := u.cache.Get(ctx, key)
	if err != nil {
		u.logger.WarnContext(ctx, "candle cache read failed",
			logger.NewField("key", key.String()),
			logger.NewField("error", err.Error()),
		)
		return nil, false
	}
	return candles, ok
}

func (u *Usecase) store(ctx context.Context, key candleCache.CacheKey, candles []candleDomain.Candle) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, key, candles); err != nil {
		u.logger.WarnContext(ctx, "candle cache write failed",
			logger.NewField("key", key.String()),
			logger.NewField("error", err.Error()),
		)
	}
}

// GetOrderbook replays the most recent book deltas into a best-effort snapshot.
func (u *Usecase) GetOrderbook(ctx context.Context, marketID string, depth int) (*marketdata.OrderbookView, error) {
	ctx = util.EnsureRequestID(ctx)

	mkt, err := market.Lookup(marketID)
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		depth = u.config.DefaultDepth
	}

	queryCtx, cancel := questdb.WithQueryTimeout(ctx, u.config.Timeout)
	defer cancel()

	rows, err := u.bookRepository.GetRecent(queryCtx, mkt, u.config.OrderbookWindow)
	if err != nil {
		return nil, u.unavailable(ctx, "get_orderbook", mkt, err)
	}

	snapshot, err := u.reconstructor.Reconstruct(orderbook.Chronological(book.Events(rows)), depth)
	if err != nil {
		return nil, err
	}

	return &marketdata.OrderbookView{Market: mkt.ID, Snapshot: snapshot}, nil
}

// GetTrades synthesizes a tape from the price updates of the trailing period.
func (u *Usecase) GetTrades(ctx context.Context, marketID, period string, limit int) (*marketdata.TradeTape, error) {
	ctx = util.EnsureRequestID(ctx)

	mkt, iv, err := u.resolve(marketID, period)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = u.config.DefaultLimit
	}

	nowMs := u.now().UnixMilli()

	queryCtx, cancel := questdb.WithQueryTimeout(ctx, u.config.Timeout)
	defer cancel()

	rows, err := u.priceRepository.GetLatest(queryCtx, mkt, nowMs-iv.Seconds*1000, nowMs, limit)
	if err != nil {
		return nil, u.unavailable(ctx, "get_trades", mkt, err)
	}

	trades, err := u.synthesizer.Synthesize(trade.Chronological(price.Observations(rows)))
	if err != nil {
		return nil, err
	}

	return &marketdata.TradeTape{
		Market: mkt.ID,
		Period: iv.Name,
		Trades: trades,
		Count:  len(trades),
	}, nil
}

// GetTradeDeltas returns trades newer than sinceMs, oldest first. A non-positive
// sinceMs returns the most recent limit trades. Price rows carry no size, so
// Amount is zero and Side is synthesized.
func (u *Usecase) GetTradeDeltas(ctx context.Context, marketID string, sinceMs int64, limit int) (*trade.Deltas, error) {
	ctx = util.EnsureRequestID(ctx)

	mkt, err := market.Lookup(marketID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = u.config.DeltaLimit
	}

	queryCtx, cancel := questdb.WithQueryTimeout(ctx, u.config.Timeout)
	defer cancel()

	var rows []price.Row
	if sinceMs > 0 {
		rows, err = u.priceRepository.GetSince(queryCtx, mkt, sinceMs, limit)
	} else {
		var latest []price.Row
		latest, err = u.priceRepository.GetLatest(queryCtx, mkt, 0, u.now().UnixMilli()+1, limit)
		rows = reverseRows(latest)
	}
	if err != nil {
		return nil, u.unavailable(ctx, "get_trade_deltas", mkt, err)
	}

	trades, err := u.synthesizer.Synthesize(price.Observations(rows))
	if err != nil {
		return nil, err
	}

	deltas := &trade.Deltas{
		Trades:          make([]trade.Fill, 0, len(rows)),
		LatestTimestamp: sinceMs,
	}
	for i, row := range rows {
		deltas.Trades = append(deltas.Trades, trade.Fill{
			TimestampMs: row.TimestampMs,
			Price:       row.Price,
			Side:        trades[i].Side,
		})
		if row.TimestampMs > deltas.LatestTimestamp {
			deltas.LatestTimestamp = row.TimestampMs
		}
	}

	return deltas, nil
}

func reverseRows(rows []price.Row) []price.Row {
	reversed := make([]price.Row, len(rows))
	for i, row := range rows {
		reversed[len(rows)-1-i] = row
	}
	return reversed
}

// GetMarketView fetches candles, book and tape concurrently. The first failure
// cancels the others and is returned.
func (u *Usecase) GetMarketView(ctx context.Context, query marketdata.ViewQuery) (*marketdata.MarketView, error) {
	ctx = util.EnsureRequestID(ctx)

	if _, _, err := u.resolve(query.Market, query.Period); err != nil {
		return nil, err
	}

	view := &marketdata.MarketView{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		candles, err := u.GetCandles(gctx, marketdata.CandleQuery{
			Market: query.Market,
			Period: query.Period,
			Limit:  query.Limit,
		})
		view.Candles = candles
		return err
	})
	g.Go(func() error {
		snapshot, err := u.GetOrderbook(gctx, query.Market, query.Depth)
		view.Orderbook = snapshot
		return err
	})
	g.Go(func() error {
		trades, err := u.GetTrades(gctx, query.Market, query.Period, query.Limit)
		view.Trades = trades
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// Markets lists the supported markets and periods.
func (u *Usecase) Markets() market.Catalog {
	return market.Catalog{
		Markets:       market.IDs(),
		Periods:       interval.GetAllIntervalNames(),
		PeriodSeconds: interval.SecondsByName(),
	}
}
