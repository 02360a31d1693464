package price

import (
	"context"
	"fmt"

	"github.com/muhammadchandra19/exchange/pkg/questdb"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
)

// Repository represents the repository for price updates.
type Repository struct {
	client questdb.QuestDBClient
}

var _ PriceRepository = (*Repository)(nil)

// NewRepository creates a new price repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Table names come from the market registry, never from callers.

func latestQuery(table string) string {
	return fmt.Sprintf(`SELECT id, timestamp, price FROM %s 
			  WHERE timestamp >= $1 AND timestamp < $2 
			  ORDER BY timestamp DESC, id DESC 
			  LIMIT $3`, table)
}

func sinceQuery(table string) string {
	return fmt.Sprintf(`SELECT id, timestamp, price FROM %s 
			  WHERE timestamp > $1 
			  ORDER BY timestamp ASC, id ASC 
			  LIMIT $2`, table)
}

// GetRange retrieves price rows in a time range, oldest first. When the range holds
// more than limit rows the oldest ones are cut.
func (r *Repository) GetRange(ctx context.Context, m market.Market, fromMs, toMs int64, limit int) ([]Row, error) {
	rows, err := r.query(ctx, latestQuery(m.PriceTable()), fromMs, toMs, limit)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// GetLatest retrieves price rows in a time range, newest first.
func (r *Repository) GetLatest(ctx context.Context, m market.Market, fromMs, toMs int64, limit int) ([]Row, error) {
	return r.query(ctx, latestQuery(m.PriceTable()), fromMs, toMs, limit)
}

// GetSince retrieves price rows newer than a watermark, oldest first.
func (r *Repository) GetSince(ctx context.Context, m market.Market, sinceMs int64, limit int) ([]Row, error) {
	return r.query(ctx, sinceQuery(m.PriceTable()), sinceMs, limit)
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.TimestampMs, &row.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		row.TimestampMs = interval.ToMillis(row.TimestampMs)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
