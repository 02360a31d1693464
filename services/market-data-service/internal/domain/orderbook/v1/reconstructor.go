package v1

import (
	"math"

	"github.com/google/btree"
	"github.com/muhammadchandra19/exchange/pkg/errors"
)

// Reconstructor builds a snapshot from a chronological (oldest first) event window.
//
// Implementations are heuristics over a bounded recent window: the result is a
// plausible approximation, not a consistent book from inception.
//
//go:generate mockgen -source=reconstructor.go -destination=mock/reconstructor_mock.go -package=mock
type Reconstructor interface {
	Reconstruct(events []Event, depth int) (Snapshot, error)
}

// SignedAmountReconstructor infers the side from the sign of the amount: positive is a
// bid, zero or negative an ask. The order id doubles as the price key. Both are
// properties of the upstream feed, not guarantees, so treat the output as indicative.
type SignedAmountReconstructor struct{}

var _ Reconstructor = SignedAmountReconstructor{}

// NewSignedAmountReconstructor returns the default reconstructor.
func NewSignedAmountReconstructor() SignedAmountReconstructor {
	return SignedAmountReconstructor{}
}

// Reconstruct replays events oldest first and returns the top depth levels per side.
func (SignedAmountReconstructor) Reconstruct(events []Event, depth int) (Snapshot, error) {
	if depth <= 0 {
		return Snapshot{}, errors.NewMalformedInput("depth", "depth must be positive, got %d", depth)
	}

	book := NewBook()
	for i, event := range events {
		if math.IsNaN(event.Amount) || math.IsInf(event.Amount, 0) {
			return Snapshot{}, errors.NewMalformedInput("events", "event %d has non-finite amount", i)
		}
		book.Apply(event)
	}

	return book.Snapshot(depth), nil
}

// Chronological returns a reversed copy of a newest-first event window.
func Chronological(newestFirst []Event) []Event {
	events := make([]Event, len(newestFirst))
	for i, event := range newestFirst {
		events[len(newestFirst)-1-i] = event
	}
	return events
}

type entry struct {
	key    int64
	amount float64
}

func entryLess(a, b entry) bool {
	return a.key < b.key
}

const btreeDegree = 16

// Book holds the two side maps keyed by order id. Keys are kept ordered so a
// snapshot is a bounded walk rather than a full sort.
type Book struct {
	bids        *btree.BTreeG[entry]
	asks        *btree.BTreeG[entry]
	timestampMs int64
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{
		bids: btree.NewG(btreeDegree, entryLess),
		asks: btree.NewG(btreeDegree, entryLess),
	}
}

// Apply replays one event. A remove touches both sides since the side of the
// removed order is unknown; removing an unknown id is a no-op.
func (b *Book) Apply(event Event) {
	if event.TimestampMs > b.timestampMs {
		b.timestampMs = event.TimestampMs
	}

	key := entry{key: event.OrderID}
	switch {
	case event.Action == ActionRemove:
		b.bids.Delete(key)
		b.asks.Delete(key)
	case event.Amount > 0:
		b.bids.ReplaceOrInsert(entry{key: event.OrderID, amount: event.Amount})
	default:
		b.asks.ReplaceOrInsert(entry{key: event.OrderID, amount: math.Abs(event.Amount)})
	}
}

// Len returns the number of bid and ask entries.
func (b *Book) Len() (bids, asks int) {
	return b.bids.Len(), b.asks.Len()
}

// Snapshot returns up to depth bids (descending) and asks (ascending). Timestamp is
// the latest event time seen, in epoch seconds.
func (b *Book) Snapshot(depth int) Snapshot {
	snapshot := Snapshot{
		Timestamp: floorSeconds(b.timestampMs),
		Bids:      make([]Level, 0, min(depth, b.bids.Len())),
		Asks:      make([]Level, 0, min(depth, b.asks.Len())),
	}

	b.bids.Descend(func(e entry) bool {
		snapshot.Bids = append(snapshot.Bids, Level{Price: float64(e.key), Amount: e.amount})
		return len(snapshot.Bids) < depth
	})
	b.asks.Ascend(func(e entry) bool {
		snapshot.Asks = append(snapshot.Asks, Level{Price: float64(e.key), Amount: e.amount})
		return len(snapshot.Asks) < depth
	})

	return snapshot
}

func floorSeconds(ms int64) int64 {
	sec := ms / 1000
	if ms%1000 < 0 {
		sec--
	}
	return sec
}
