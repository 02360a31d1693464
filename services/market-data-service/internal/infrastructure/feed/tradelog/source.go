package tradelog

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	liveDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
)

// Source reads fills from a JSON trade log. The file is re-read on every fetch
// because the writer rewrites it in place.
type Source struct {
	path          string
	defaultMarket string
}

var _ liveDomain.Source = (*Source)(nil)

// NewSource creates a new trade log source.
func NewSource(path string, defaultMarket market.Market) *Source {
	return &Source{
		path:          path,
		defaultMarket: defaultMarket.ID,
	}
}

// Path returns the watched file.
func (s *Source) Path() string {
	return s.path
}

// Fetch returns up to limit fills of mkt at or after sinceMs, oldest first. Fills
// sharing a millisecond keep their file order. A missing file is an empty log.
func (s *Source) Fetch(_ context.Context, mkt market.Market, sinceMs int64, limit int) ([]trade.Fill, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []trade.Fill{}, nil
		}
		return nil, errors.NewDataSourceUnavailable("read_trade_log", err)
	}

	var file File
	if err := json.Unmarshal(raw, &file); err != nil {
		// A half-written file parses on the next fetch.
		return nil, errors.NewDataSourceUnavailable("decode_trade_log", err)
	}

	fills := make([]trade.Fill, 0)
	for _, entry := range file.Trades {
		if !s.belongsTo(entry, mkt) || entry.Timestamp < sinceMs {
			continue
		}
		if math.IsNaN(entry.Price) || math.IsInf(entry.Price, 0) {
			continue
		}
		fills = append(fills, entry.ToFill())
	}

	sort.SliceStable(fills, func(i, j int) bool {
		return fills[i].TimestampMs < fills[j].TimestampMs
	})
	if limit > 0 && len(fills) > limit {
		fills = fills[:limit]
	}
	return fills, nil
}

func (s *Source) belongsTo(entry Entry, mkt market.Market) bool {
	if entry.Market == "" {
		return mkt.ID == s.defaultMarket
	}
	resolved, err := market.Lookup(entry.Market)
	return err == nil && resolved.ID == mkt.ID
}
