package bootstrap

import (
	marketdataDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/marketdata"
	marketdataUc "github.com/muhammadchandra19/exchange/services/market-data-service/internal/usecase/marketdata"
)

// Usecase is the usecase for the market data service.
type Usecase struct {
	MarketDataUsecase marketdataDomain.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	var opts []marketdataUc.Option
	if b.Cache.CandleCache != nil {
		opts = append(opts, marketdataUc.WithCache(b.Cache.CandleCache))
	}

	b.Usecase.MarketDataUsecase = marketdataUc.NewUsecase(
		b.Repository.PriceRepository,
		b.Repository.BookRepository,
		b.Config.Query,
		b.Logger,
		opts...,
	)
}
