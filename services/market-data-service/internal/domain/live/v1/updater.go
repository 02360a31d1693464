package v1

import (
	"math"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	candle "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/candle/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
)

// State of an Updater.
type State int

const (
	// StateEmpty has no forming candle yet.
	StateEmpty State = iota
	// StateOpen has a forming candle for the current bucket.
	StateOpen
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "empty"
}

// Update is the outcome of applying one trade.
type Update struct {
	// Forming is the candle after the trade was applied.
	Forming candle.Candle
	// Finalized is set when the trade rolled the bucket over.
	Finalized *candle.Candle
	// Dropped reports a late trade that was ignored.
	Dropped bool
}

// Updater keeps the forming candle of one (market, period) pair. It is not safe for
// concurrent use; give each pair a single owner.
type Updater struct {
	interval interval.Interval
	state    State
	forming  candle.Candle
}

// NewUpdater returns an empty updater for the interval.
func NewUpdater(iv interval.Interval) *Updater {
	return &Updater{interval: iv}
}

// Interval returns the period the updater buckets by.
func (u *Updater) Interval() interval.Interval {
	return u.interval
}

// State returns the current state.
func (u *Updater) State() State {
	return u.state
}

// Forming returns a copy of the forming candle, false when empty.
func (u *Updater) Forming() (candle.Candle, bool) {
	return u.forming, u.state == StateOpen
}

// Reset drops the forming candle and switches to iv.
func (u *Updater) Reset(iv interval.Interval) {
	u.interval = iv
	u.state = StateEmpty
	u.forming = candle.Candle{}
}

// OnTrade folds a trade into the forming candle. Trades older than the forming bucket
// are dropped, never applied to history. Skipped buckets are not backfilled.
func (u *Updater) OnTrade(price float64, timestampSec int64, amount float64) (Update, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Update{}, errors.NewMalformedInput("price", "non-finite trade price")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return Update{}, errors.NewMalformedInput("amount", "invalid trade amount %v", amount)
	}
	if timestampSec < 0 {
		return Update{}, errors.NewMalformedInput("timestamp", "negative trade timestamp %d", timestampSec)
	}

	bucket := u.interval.BucketStart(timestampSec)

	switch {
	case u.state == StateEmpty:
		u.forming = candle.NewCandle(bucket, price, amount)
		u.state = StateOpen
		return Update{Forming: u.forming}, nil

	case bucket == u.forming.Time:
		u.forming.Update(price, amount)
		return Update{Forming: u.forming}, nil

	case bucket > u.forming.Time:
		finalized := u.forming
		u.forming = candle.NewCandle(bucket, price, amount)
		return Update{Forming: u.forming, Finalized: &finalized}, nil

	default:
		return Update{Forming: u.forming, Dropped: true}, nil
	}
}

// InitFromHistory seeds the forming candle from a chronological history. If the last
// candle is in the current bucket it is adopted; otherwise a flat zero-volume candle
// at the last close is pinned to the current bucket. Empty history leaves the
// updater empty.
func (u *Updater) InitFromHistory(history []candle.Candle, nowSec int64) {
	if len(history) == 0 {
		u.state = StateEmpty
		u.forming = candle.Candle{}
		return
	}

	last := history[len(history)-1]
	current := u.interval.BucketStart(nowSec)
	if last.Time == current {
		u.forming = last
	} else {
		u.forming = candle.NewCandle(current, last.Close, 0)
	}
	u.state = StateOpen
}
