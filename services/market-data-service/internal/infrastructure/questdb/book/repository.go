package book

import (
	"context"
	"fmt"

	"github.com/muhammadchandra19/exchange/pkg/questdb"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
)

// Repository represents the repository for order book deltas.
type Repository struct {
	client questdb.QuestDBClient
}

var _ BookRepository = (*Repository)(nil)

// NewRepository creates a new book repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

func recentQuery(table string) string {
	return fmt.Sprintf(`SELECT timestamp, action, order_id, amount FROM %s 
			  ORDER BY timestamp DESC, id DESC 
			  LIMIT $1`, table)
}

// GetRecent retrieves the newest deltas of a market's book table.
func (r *Repository) GetRecent(ctx context.Context, m market.Market, limit int) ([]Row, error) {
	rows, err := r.client.Query(ctx, recentQuery(m.BookTable()), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query book: %w", err)
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.TimestampMs, &row.Action, &row.OrderID, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		row.TimestampMs = interval.ToMillis(row.TimestampMs)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
