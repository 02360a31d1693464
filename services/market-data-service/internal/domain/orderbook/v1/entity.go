package v1

// Action is the kind of order book delta stored in the book tables.
type Action int

const (
	// ActionRemove deletes an order id from the book (stored as 0).
	ActionRemove Action = 0
	// ActionUpsert inserts or replaces an order id (stored as 1).
	ActionUpsert Action = 1
)

// ParseAction maps a stored action code. Any non-zero code is an upsert.
func ParseAction(code int) Action {
	if code == int(ActionRemove) {
		return ActionRemove
	}
	return ActionUpsert
}

// String implements fmt.Stringer.
func (a Action) String() string {
	if a == ActionRemove {
		return "remove"
	}
	return "upsert"
}

// Event is one row of the order book delta table. Amount is signed: the sign is
// the only side information the source carries.
type Event struct {
	TimestampMs int64
	Action      Action
	OrderID     int64
	Amount      float64
}

// Level is one side entry of a snapshot. Price is the order id of the source event.
type Level struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// Snapshot is a best-effort book view. Bids are descending, asks ascending.
type Snapshot struct {
	Timestamp int64   `json:"timestamp"`
	Bids      []Level `json:"bids"`
	Asks      []Level `json:"asks"`
}

// EmptySnapshot returns a snapshot with non-nil empty sides.
func EmptySnapshot() Snapshot {
	return Snapshot{Bids: []Level{}, Asks: []Level{}}
}
