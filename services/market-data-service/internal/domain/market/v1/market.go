package v1

import (
	"strings"

	"github.com/muhammadchandra19/exchange/pkg/errors"
)

const (
	pricePrefix = "price_"
	bookPrefix  = "book_"
)

// Market is a supported instrument and the row store tables that hold its data.
type Market struct {
	ID          string
	TableSuffix string
}

// PriceTable is the tick/price table, columns (id, timestamp, price).
func (m Market) PriceTable() string {
	return pricePrefix + m.TableSuffix
}

// BookTable is the order book delta table, columns (id, timestamp, action, order_id, amount).
func (m Market) BookTable() string {
	return bookPrefix + m.TableSuffix
}

// Supported markets, in listing order.
var (
	XBTUSD  = Market{ID: "xbtusd", TableSuffix: "bitmex_xbt_usd"}
	ETHUSD  = Market{ID: "ethusd", TableSuffix: "bitmex_eth_usd"}
	SOLUSD  = Market{ID: "solusd", TableSuffix: "bitmex_sol_usd"}
	XRPUSD  = Market{ID: "xrpusd", TableSuffix: "bitmex_xrp_usd"}
	DOGEUSD = Market{ID: "dogeusd", TableSuffix: "bitmex_doge_usd"}
)

// AllMarkets lists every supported market.
var AllMarkets = []Market{XBTUSD, ETHUSD, SOLUSD, XRPUSD, DOGEUSD}

var marketRegistry = make(map[string]Market, len(AllMarkets))

func init() {
	for _, m := range AllMarkets {
		marketRegistry[m.ID] = m
	}
}

// Lookup resolves a market identifier, case-insensitively.
func Lookup(id string) (Market, error) {
	m, ok := marketRegistry[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Market{}, errors.NewUnsupportedMarket(id)
	}
	return m, nil
}

// IDs returns the supported market identifiers.
func IDs() []string {
	ids := make([]string, 0, len(AllMarkets))
	for _, m := range AllMarkets {
		ids = append(ids, m.ID)
	}
	return ids
}

// ParseMarkets resolves a list of identifiers. An empty list selects every market.
func ParseMarkets(ids []string) ([]Market, error) {
	if len(ids) == 0 {
		return append([]Market(nil), AllMarkets...), nil
	}

	markets := make([]Market, 0, len(ids))
	for _, id := range ids {
		m, err := Lookup(id)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, nil
}

// Catalog is the static listing of markets and periods exposed to clients.
type Catalog struct {
	Markets       []string         `json:"markets"`
	Periods       []string         `json:"periods"`
	PeriodSeconds map[string]int64 `json:"periodSeconds"`
}
