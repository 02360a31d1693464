package bootstrap

import (
	"fmt"

	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/consumer"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/feed/delta"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/feed/tradelog"
	liveUc "github.com/muhammadchandra19/exchange/services/market-data-service/internal/usecase/live"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
)

// Pair is a (market, period) the live pipeline keeps a forming candle for.
type Pair struct {
	Market string
	Period string
}

// Live is the live candle pipeline. Exactly one of Poller and Consumer is set.
type Live struct {
	Registry *liveUc.Registry
	Poller   *liveUc.Poller
	Consumer *consumer.TradeConsumer
	Watcher  *tradelog.Watcher
	Pairs    []Pair
}

// registerLive registers the live pipeline.
func (b *Bootstrap) registerLive() error {
	cfg := b.Config.Live

	markets, err := market.ParseMarkets(cfg.Markets)
	if err != nil {
		return err
	}
	periods, err := interval.ParseIntervals(cfg.Periods)
	if err != nil {
		return err
	}

	b.Live.Pairs = make([]Pair, 0, len(markets)*len(periods))
	for _, mkt := range markets {
		for _, iv := range periods {
			b.Live.Pairs = append(b.Live.Pairs, Pair{Market: mkt.ID, Period: iv.Name})
		}
	}

	b.Live.Registry = liveUc.NewRegistry(
		b.Usecase.MarketDataUsecase,
		b.Cache.Publisher,
		b.Logger,
		liveUc.Options{
			InboxSize:    cfg.InboxSize,
			HistoryLimit: cfg.HistoryLimit,
		},
	)

	switch cfg.Feed {
	case config.FeedQuestDB:
		b.Live.Poller = liveUc.NewPoller(
			delta.NewSource(b.Usecase.MarketDataUsecase),
			b.Live.Registry,
			nil,
			markets,
			cfg.PollInterval,
			cfg.DeltaLimit,
			b.Logger,
		)

	case config.FeedTradeLog:
		watcher, err := tradelog.NewWatcher(cfg.TradeLogPath, b.Logger)
		if err != nil {
			return fmt.Errorf("failed to watch trade log: %w", err)
		}
		b.Live.Watcher = watcher
		b.Live.Poller = liveUc.NewPoller(
			tradelog.NewSource(cfg.TradeLogPath, markets[0]),
			b.Live.Registry,
			watcher,
			markets,
			cfg.PollInterval,
			cfg.DeltaLimit,
			b.Logger,
		)

	case config.FeedKafka:
		b.Live.Consumer = consumer.NewTradeConsumer(b.Config.TradeKafka, b.Live.Registry, b.Logger)

	default:
		return fmt.Errorf("unknown live feed %q", cfg.Feed)
	}

	return nil
}
