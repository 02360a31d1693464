package v1

import (
	"math"
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmountReconstructor_Reconstruct(t *testing.T) {
	testCases := []struct {
		name     string
		events   []Event
		depth    int
		assertFn func(t *testing.T, snapshot Snapshot, err error)
	}{
		{
			name: "remove clears the bid",
			events: []Event{
				{TimestampMs: 1_000, Action: ActionUpsert, OrderID: 100, Amount: 5},
				{TimestampMs: 2_000, Action: ActionUpsert, OrderID: 90, Amount: 3},
				{TimestampMs: 3_500, Action: ActionRemove, OrderID: 100},
			},
			depth: 5,
			assertFn: func(t *testing.T, snapshot Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, []Level{{Price: 90, Amount: 3}}, snapshot.Bids)
				assert.Equal(t, []Level{}, snapshot.Asks)
				assert.Equal(t, int64(3), snapshot.Timestamp)
			},
		},
		{
			name: "sides are ordered and truncated",
			events: []Event{
				{TimestampMs: 1, Action: ActionUpsert, OrderID: 101, Amount: 1},
				{TimestampMs: 2, Action: ActionUpsert, OrderID: 103, Amount: 2},
				{TimestampMs: 3, Action: ActionUpsert, OrderID: 102, Amount: 3},
				{TimestampMs: 4, Action: ActionUpsert, OrderID: 110, Amount: -4},
				{TimestampMs: 5, Action: ActionUpsert, OrderID: 108, Amount: -5},
				{TimestampMs: 6, Action: ActionUpsert, OrderID: 109, Amount: 0},
			},
			depth: 2,
			assertFn: func(t *testing.T, snapshot Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, []Level{{Price: 103, Amount: 2}, {Price: 102, Amount: 3}}, snapshot.Bids)
				assert.Equal(t, []Level{{Price: 108, Amount: 5}, {Price: 109, Amount: 0}}, snapshot.Asks)
			},
		},
		{
			name: "later upsert replaces amount",
			events: []Event{
				{TimestampMs: 1, Action: ActionUpsert, OrderID: 50, Amount: 1},
				{TimestampMs: 2, Action: ActionUpsert, OrderID: 50, Amount: 7},
			},
			depth: 25,
			assertFn: func(t *testing.T, snapshot Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, []Level{{Price: 50, Amount: 7}}, snapshot.Bids)
			},
		},
		{
			name: "removing an unknown id is a no-op",
			events: []Event{
				{TimestampMs: 1, Action: ActionUpsert, OrderID: 50, Amount: -2},
				{TimestampMs: 2, Action: ActionRemove, OrderID: 999},
			},
			depth: 25,
			assertFn: func(t *testing.T, snapshot Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, []Level{{Price: 50, Amount: 2}}, snapshot.Asks)
				assert.Empty(t, snapshot.Bids)
			},
		},
		{
			name:   "empty window",
			events: nil,
			depth:  25,
			assertFn: func(t *testing.T, snapshot Snapshot, err error) {
				require.NoError(t, err)
				assert.Equal(t, EmptySnapshot(), snapshot)
			},
		},
		{
			name:   "non-positive depth",
			events: nil,
			depth:  0,
			assertFn: func(t *testing.T, snapshot Snapshot, err error) {
				assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
			},
		},
		{
			name:   "non-finite amount",
			events: []Event{{TimestampMs: 1, Action: ActionUpsert, OrderID: 1, Amount: math.Inf(-1)}},
			depth:  5,
			assertFn: func(t *testing.T, snapshot Snapshot, err error) {
				assert.True(t, errors.IsKind(err, errors.KindMalformedInput))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snapshot, err := NewSignedAmountReconstructor().Reconstruct(tc.events, tc.depth)
			tc.assertFn(t, snapshot, err)
		})
	}
}

func TestBook_ReplayIsIdempotent(t *testing.T) {
	events := []Event{
		{TimestampMs: 10, Action: ActionUpsert, OrderID: 7, Amount: 1},
		{TimestampMs: 20, Action: ActionUpsert, OrderID: 8, Amount: -1},
		{TimestampMs: 30, Action: ActionRemove, OrderID: 7},
	}

	book := NewBook()
	for _, event := range events {
		book.Apply(event)
	}
	first := book.Snapshot(10)

	for _, event := range events {
		book.Apply(event)
	}
	assert.Equal(t, first, book.Snapshot(10))

	bids, asks := book.Len()
	assert.Zero(t, bids)
	assert.Equal(t, 1, asks)
}

func TestChronological(t *testing.T) {
	newestFirst := []Event{{TimestampMs: 3}, {TimestampMs: 2}, {TimestampMs: 1}}

	got := Chronological(newestFirst)
	assert.Equal(t, []Event{{TimestampMs: 1}, {TimestampMs: 2}, {TimestampMs: 3}}, got)
	assert.Equal(t, int64(3), newestFirst[0].TimestampMs)
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, ActionRemove, ParseAction(0))
	assert.Equal(t, ActionUpsert, ParseAction(1))
	assert.Equal(t, ActionUpsert, ParseAction(2))
	assert.Equal(t, "remove", ActionRemove.String())
}
