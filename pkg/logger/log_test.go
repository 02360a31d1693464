package logger

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muhammadchandra19/exchange/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  Level
	}{
		{input: "debug", want: DebugLevel},
		{input: " WARN ", want: WarnLevel},
		{input: "error", want: ErrorLevel},
		{input: "info", want: InfoLevel},
		{input: "verbose", want: InfoLevel},
		{input: "", want: InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.input))
		})
	}
}

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_Context(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	log, err := NewLogger(WithOutputPaths([]string{path}), WithLoggingLevel(DebugLevel))
	require.NoError(t, err)

	ctx := util.WithRequestID(context.Background(), "req-42")
	child := log.With(NewField("market", "xbtusd"))
	child.InfoContext(ctx, "candles served", NewField("count", 3))
	child.DebugContext(context.Background(), "late trade dropped")
	log.ErrorContext(ctx, errors.New("store down"), NewField("action", "get_candles"))
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 3)

	assert.Equal(t, "candles served", entries[0]["message"])
	assert.Equal(t, "req-42", entries[0]["request_id"])
	assert.Equal(t, "xbtusd", entries[0]["market"])

	assert.Equal(t, "debug", entries[1]["level"])
	assert.NotContains(t, entries[1], "request_id")

	assert.Equal(t, "store down", entries[2]["message"])
	assert.Equal(t, "get_candles", entries[2]["action"])
}
