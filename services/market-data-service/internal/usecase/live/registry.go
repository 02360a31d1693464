package live

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
	candleDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	liveDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/marketdata"
	candleCache "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/redis/candle"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
)

// Options tunes a Registry.
type Options struct {
	InboxSize    int
	HistoryLimit int
}

// DefaultOptions returns the default registry options.
func DefaultOptions() Options {
	return Options{
		InboxSize:    1024,
		HistoryLimit: 2,
	}
}

type pairKey struct {
	market string
	period string
}

// worker owns the updater of one pair. Only its goroutine touches the updater.
type worker struct {
	key         pairKey
	updater     *liveDomain.Updater
	inbox       chan liveDomain.Trade
	subscribers int

	mu      sync.RWMutex
	forming candleDomain.Candle
	open    bool
}

// Registry keeps one live updater per subscribed (market, period) pair and feeds
// them from a shared trade stream.
type Registry struct {
	history   marketdata.Usecase
	publisher candleCache.Publisher
	logger    logger.Interface
	options   Options
	now       func() time.Time

	mu      sync.RWMutex
	workers map[pairKey]*worker

	ctxMu  sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ liveDomain.Dispatcher = (*Registry)(nil)

// NewRegistry creates a new registry. history seeds new updaters and may be nil.
func NewRegistry(
	history marketdata.Usecase,
	publisher candleCache.Publisher,
	logger logger.Interface,
	options Options,
) *Registry {
	if options.InboxSize <= 0 {
		options.InboxSize = DefaultOptions().InboxSize
	}
	if publisher == nil {
		publisher = candleCache.NopPublisher{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		history:   history,
		publisher: publisher,
		logger:    logger,
		options:   options,
		now:       time.Now,
		workers:   make(map[pairKey]*worker),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start binds the registry to ctx. Cancelling ctx stops every worker.
func (r *Registry) Start(ctx context.Context) error {
	r.ctxMu.Lock()
	r.cancel()
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.ctxMu.Unlock()

	r.logger.InfoContext(ctx, "live registry started", logger.NewField("action", "live_registry_start"))
	return nil
}

// Stop closes every inbox and waits for the workers to drain.
func (r *Registry) Stop(ctx context.Context) error {
	r.ctxMu.RLock()
	r.cancel()
	r.ctxMu.RUnlock()

	r.mu.Lock()
	for key, w := range r.workers {
		close(w.inbox)
		delete(r.workers, key)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("live registry stopped", logger.NewField("action", "live_registry_stop"))
		return nil
	case <-ctx.Done():
		r.logger.Warn("live registry stop timeout exceeded", logger.NewField("action", "live_registry_stop"))
		return ctx.Err()
	}
}

func (r *Registry) context() context.Context {
	r.ctxMu.RLock()
	defer r.ctxMu.RUnlock()
	return r.ctx
}

// Subscribe registers interest in a pair, creating and seeding its updater on first use.
func (r *Registry) Subscribe(ctx context.Context, marketID, period string) error {
	mkt, err := market.Lookup(marketID)
	if err != nil {
		return err
	}
	iv, err := interval.GetInterval(period)
	if err != nil {
		return err
	}
	key := pairKey{market: mkt.ID, period: iv.Name}

	r.mu.Lock()
	if w, ok := r.workers[key]; ok {
		w.subscribers++
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	updater := liveDomain.NewUpdater(iv)
	r.seed(ctx, updater, key)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another subscriber may have won the race while history loaded.
	if w, ok := r.workers[key]; ok {
		w.subscribers++
		return nil
	}

	w := &worker{
		key:         key,
		updater:     updater,
		inbox:       make(chan liveDomain.Trade, r.options.InboxSize),
		subscribers: 1,
	}
	w.forming, w.open = updater.Forming()
	r.workers[key] = w

	r.wg.Add(1)
	go r.run(w)

	r.logger.InfoContext(ctx, "live pair subscribed",
		logger.NewField("action", "live_subscribe"),
		logger.NewField("market", key.market),
		logger.NewField("period", key.period),
	)
	return nil
}

func (r *Registry) seed(ctx context.Context, updater *liveDomain.Updater, key pairKey) {
	if r.history == nil {
		return
	}
	series, err := r.history.GetCandles(util.EnsureRequestID(ctx), marketdata.CandleQuery{
		Market: key.market,
		Period: key.period,
		Limit:  r.options.HistoryLimit,
	})
	if err != nil {
		r.logger.ErrorContext(ctx, err,
			logger.NewField("action", "live_seed_history"),
			logger.NewField("market", key.market),
			logger.NewField("period", key.period),
		)
		return
	}
	updater.InitFromHistory(series.Candles, r.now().Unix())
}

// Unsubscribe drops interest in a pair. The last unsubscribe stops its worker.
func (r *Registry) Unsubscribe(marketID, period string) {
	mkt, err := market.Lookup(marketID)
	if err != nil {
		return
	}
	key := pairKey{market: mkt.ID, period: period}

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workers[key]
	if !ok {
		return
	}
	w.subscribers--
	if w.subscribers > 0 {
		return
	}
	close(w.inbox)
	delete(r.workers, key)

	r.logger.Info("live pair unsubscribed",
		logger.NewField("action", "live_unsubscribe"),
		logger.NewField("market", key.market),
		logger.NewField("period", key.period),
	)
}

// OnTrade hands a trade to every subscribed period of its market. Delivery per pair is
// ordered; a full inbox blocks until the worker catches up or the registry stops.
func (r *Registry) OnTrade(t liveDomain.Trade) {
	mkt, err := market.Lookup(t.Market)
	if err != nil {
		r.logger.Debug("trade for unknown market ignored", logger.NewField("market", t.Market))
		return
	}
	t.Market = mkt.ID

	done := r.context().Done()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for key, w := range r.workers {
		if key.market != mkt.ID {
			continue
		}
		select {
		case w.inbox <- t:
		case <-done:
			return
		}
	}
}

// Forming returns the current forming candle of a pair.
func (r *Registry) Forming(marketID, period string) (candleDomain.Candle, bool) {
	mkt, err := market.Lookup(marketID)
	if err != nil {
		return candleDomain.Candle{}, false
	}

	r.mu.RLock()
	w, ok := r.workers[pairKey{market: mkt.ID, period: period}]
	r.mu.RUnlock()
	if !ok {
		return candleDomain.Candle{}, false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.forming, w.open
}

// Pairs returns the number of active pairs.
func (r *Registry) Pairs() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workers)
}

func (r *Registry) run(w *worker) {
	defer r.wg.Done()

	for t := range w.inbox {
		update, err := w.updater.OnTrade(t.Price, t.TimestampSec, t.Amount)
		if err != nil {
			r.logger.Error(err,
				logger.NewField("action", "live_on_trade"),
				logger.NewField("market", w.key.market),
				logger.NewField("period", w.key.period),
			)
			continue
		}
		if update.Dropped {
			r.logger.Debug("late trade dropped",
				logger.NewField("market", w.key.market),
				logger.NewField("period", w.key.period),
				logger.NewField("timestamp", t.TimestampSec),
				logger.NewField("forming", update.Forming.Time),
			)
			continue
		}

		w.mu.Lock()
		w.forming, w.open = update.Forming, true
		w.mu.Unlock()

		if update.Finalized != nil {
			r.publish(w.key, *update.Finalized, true)
		}
		r.publish(w.key, update.Forming, false)
	}
}

func (r *Registry) publish(key pairKey, c candleDomain.Candle, final bool) {
	event := liveDomain.CandleEvent{
		Market: key.market,
		Period: key.period,
		Candle: c,
		Final:  final,
	}
	if err := r.publisher.Publish(r.context(), event); err != nil {
		r.logger.Error(err,
			logger.NewField("action", "live_publish"),
			logger.NewField("market", key.market),
			logger.NewField("period", key.period),
		)
	}
}
