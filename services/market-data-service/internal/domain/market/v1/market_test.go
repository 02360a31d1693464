package v1

import (
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	testCases := []struct {
		id        string
		wantPrice string
		wantBook  string
		wantErr   bool
	}{
		{id: "xbtusd", wantPrice: "price_bitmex_xbt_usd", wantBook: "book_bitmex_xbt_usd"},
		{id: "ETHUSD", wantPrice: "price_bitmex_eth_usd", wantBook: "book_bitmex_eth_usd"},
		{id: " solusd ", wantPrice: "price_bitmex_sol_usd", wantBook: "book_bitmex_sol_usd"},
		{id: "xrpusd", wantPrice: "price_bitmex_xrp_usd", wantBook: "book_bitmex_xrp_usd"},
		{id: "dogeusd", wantPrice: "price_bitmex_doge_usd", wantBook: "book_bitmex_doge_usd"},
		{id: "unknownmkt", wantErr: true},
		{id: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			m, err := Lookup(tc.id)
			if tc.wantErr {
				assert.True(t, errors.IsKind(err, errors.KindUnsupportedMarket))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPrice, m.PriceTable())
			assert.Equal(t, tc.wantBook, m.BookTable())
		})
	}
}

func TestParseMarkets(t *testing.T) {
	all, err := ParseMarkets(nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	some, err := ParseMarkets([]string{"ethusd", "XBTUSD"})
	require.NoError(t, err)
	assert.Equal(t, []Market{ETHUSD, XBTUSD}, some)

	_, err = ParseMarkets([]string{"ethusd", "ltcusd"})
	assert.True(t, errors.IsKind(err, errors.KindUnsupportedMarket))

	assert.Equal(t, []string{"xbtusd", "ethusd", "solusd", "xrpusd", "dogeusd"}, IDs())
}
