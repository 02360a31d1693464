package v1

import (
	"strings"

	"github.com/muhammadchandra19/exchange/pkg/errors"
)

// Side is the direction tag of a trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide accepts buy/sell in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", errors.NewMalformedInput("side", "unknown side %q", s)
	}
}

// Observation is one price update row.
type Observation struct {
	ID           int64
	TimestampSec int64
	Price        float64
}

// Trade is a synthesized tape entry. Side is inferred from price movement and is
// not an exchange-confirmed aggressor side.
type Trade struct {
	ID        int64   `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
	Side      Side    `json:"side"`
}

// Fill is a trade as recorded by a feed that carries size and side, in the compact
// wire shape used by trade logs and deltas.
type Fill struct {
	TimestampMs int64   `json:"t"`
	Price       float64 `json:"p"`
	Amount      float64 `json:"a"`
	Side        Side    `json:"s"`
}

// Deltas is an incremental batch of fills. LatestTimestamp is the watermark a client
// passes back as the next "since".
type Deltas struct {
	Trades          []Fill `json:"trades"`
	LatestTimestamp int64  `json:"latestTimestamp"`
}
