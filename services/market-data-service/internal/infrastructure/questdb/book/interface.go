package book

import (
	"context"

	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
)

// BookRepository reads the book_<market> delta tables.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type BookRepository interface {
	// GetRecent returns the most recent limit deltas, newest first.
	GetRecent(ctx context.Context, mkt market.Market, limit int) ([]Row, error)
}
