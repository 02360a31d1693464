package live

import (
	"context"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
	liveDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
)

// Poller pulls new fills from a Source on a fixed interval and dispatches them.
// It runs in a single goroutine, so a slow fetch delays the next tick instead of
// overlapping with it.
type Poller struct {
	source     liveDomain.Source
	dispatcher liveDomain.Dispatcher
	notifier   liveDomain.Notifier
	markets    []market.Market
	interval   time.Duration
	limit      int
	logger     logger.Interface
	now        func() time.Time

	cursors map[string]cursor
}

// cursor is the resume point of one market: fetches start at ms, and the first
// seen fills at ms were already dispatched. Fills sharing a millisecond are
// therefore never skipped, even when a batch ends partway through one.
type cursor struct {
	ms   int64
	seen int
}

// NewPoller creates a new poller. notifier may be nil.
func NewPoller(
	source liveDomain.Source,
	dispatcher liveDomain.Dispatcher,
	notifier liveDomain.Notifier,
	markets []market.Market,
	pollInterval time.Duration,
	limit int,
	logger logger.Interface,
) *Poller {
	return &Poller{
		source:     source,
		dispatcher: dispatcher,
		notifier:   notifier,
		markets:    markets,
		interval:   pollInterval,
		limit:      limit,
		logger:     logger,
		now:        time.Now,
		cursors:    make(map[string]cursor, len(markets)),
	}
}

// Run polls until ctx is done. Watermarks start at the current time so only trades
// arriving after start are dispatched.
func (p *Poller) Run(ctx context.Context) error {
	startMs := p.now().UnixMilli()
	for _, mkt := range p.markets {
		if _, ok := p.cursors[mkt.ID]; !ok {
			p.cursors[mkt.ID] = cursor{ms: startMs}
		}
	}

	var wake <-chan struct{}
	if p.notifier != nil {
		wake = p.notifier.Notify()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.InfoContext(ctx, "starting trade poller",
		logger.NewField("action", "poller_start"),
		logger.NewField("markets", len(p.markets)),
		logger.NewField("interval", p.interval.String()),
	)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("stopping trade poller", logger.NewField("action", "poller_stop"))
			return ctx.Err()
		case <-ticker.C:
			p.PollOnce(ctx)
		case _, ok := <-wake:
			if !ok {
				wake = nil
				continue
			}
			p.PollOnce(ctx)
		}
	}
}

// PollOnce fetches and dispatches one batch per market.
func (p *Poller) PollOnce(ctx context.Context) {
	ctx = util.WithRequestID(ctx, "")

	for _, mkt := range p.markets {
		from := p.cursors[mkt.ID]

		fills, err := p.source.Fetch(ctx, mkt, from.ms, p.limit+from.seen)
		if err != nil {
			p.logger.ErrorContext(ctx, err,
				logger.NewField("action", "poll_trades"),
				logger.NewField("market", mkt.ID),
			)
			continue
		}

		next := from
		skip := from.seen
		for _, fill := range fills {
			if fill.TimestampMs < from.ms {
				continue
			}
			if fill.TimestampMs == from.ms && skip > 0 {
				skip--
				continue
			}

			p.dispatcher.OnTrade(liveDomain.Trade{
				Market:       mkt.ID,
				TimestampSec: interval.MillisToSeconds(fill.TimestampMs),
				Price:        fill.Price,
				Amount:       fill.Amount,
			})

			if fill.TimestampMs == next.ms {
				next.seen++
			} else {
				next = cursor{ms: fill.TimestampMs, seen: 1}
			}
		}

		p.cursors[mkt.ID] = next
	}
}

// Watermark returns the last dispatched timestamp of a market, in milliseconds.
func (p *Poller) Watermark(marketID string) int64 {
	c := p.cursors[marketID]
	if c.seen > 0 {
		return c.ms
	}
	return c.ms - 1
}

// SetWatermark marks every fill at or before sinceMs as dispatched.
func (p *Poller) SetWatermark(marketID string, sinceMs int64) {
	p.cursors[marketID] = cursor{ms: sinceMs + 1}
}
