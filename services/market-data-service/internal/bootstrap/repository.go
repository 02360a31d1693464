package bootstrap

import (
	bookInfra "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/book"
	priceInfra "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/price"
)

// Repository is the repository for the market data service.
type Repository struct {
	PriceRepository priceInfra.PriceRepository
	BookRepository  bookInfra.BookRepository
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.PriceRepository = priceInfra.NewRepository(b.QuestDB)
	b.Repository.BookRepository = bookInfra.NewRepository(b.QuestDB)
}
