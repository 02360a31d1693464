package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/marketdata"
)

const usage = `usage: query <command> [flags]

commands:
  candles    OHLC candles for a market and period
  orderbook  reconstructed order book snapshot
  trades     synthesized trade tape
  deltas     fills newer than a watermark
  view       candles, order book and trades together
  markets    supported markets and periods
`

// Exit codes.
const (
	exitOK          = 0
	exitUnavailable = 1
	exitInvalid     = 2
)

type command func(ctx context.Context, usecase marketdata.Usecase, args []string) (any, error)

var commands = map[string]command{
	"candles":   runCandles,
	"orderbook": runOrderbook,
	"trades":    runTrades,
	"deltas":    runDeltas,
	"view":      runView,
	"markets":   runMarkets,
}

// run executes one command and writes its JSON result to stdout. Errors are
// written to stderr as {code, message, field}.
func run(ctx context.Context, usecase marketdata.Usecase, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitInvalid
	}

	cmd, ok := commands[strings.ToLower(args[0])]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitInvalid
	}

	result, err := cmd(ctx, usecase, args[1:])
	if err != nil {
		return writeError(stderr, err)
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUnavailable
	}
	return exitOK
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeError(w io.Writer, err error) int {
	body := errorBody{Code: "INTERNAL_ERROR", Message: err.Error()}
	code := exitUnavailable

	var mdErr *errors.MarketDataError
	if stderrors.As(err, &mdErr) {
		details := mdErr.Details()
		body = errorBody{Code: details.Code, Message: details.Message, Field: details.Field}
		if mdErr.Kind.Category() == errors.CategoryValidation {
			code = exitInvalid
		}
	}

	_ = json.NewEncoder(w).Encode(body)
	return code
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errors.NewMalformedInput(fs.Name(), "%v", err)
	}
	return nil
}

func runCandles(ctx context.Context, usecase marketdata.Usecase, args []string) (any, error) {
	fs := newFlagSet("candles")
	mkt := fs.String("market", "xbtusd", "market identifier")
	period := fs.String("period", "", "candle period, e.g. 1m or 1h")
	from := fs.Int64("from", 0, "range start, unix seconds")
	to := fs.Int64("to", 0, "range end, unix seconds")
	limit := fs.Int("limit", 0, "maximum number of candles")
	fill := fs.Bool("fill", false, "carry the last close through empty buckets")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	return usecase.GetCandles(ctx, marketdata.CandleQuery{
		Market:   *mkt,
		Period:   *period,
		FromSec:  *from,
		ToSec:    *to,
		Limit:    *limit,
		FillGaps: *fill,
	})
}

func runOrderbook(ctx context.Context, usecase marketdata.Usecase, args []string) (any, error) {
	fs := newFlagSet("orderbook")
	mkt := fs.String("market", "xbtusd", "market identifier")
	depth := fs.Int("depth", 0, "levels per side")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	return usecase.GetOrderbook(ctx, *mkt, *depth)
}

func runTrades(ctx context.Context, usecase marketdata.Usecase, args []string) (any, error) {
	fs := newFlagSet("trades")
	mkt := fs.String("market", "xbtusd", "market identifier")
	period := fs.String("period", "", "lookback period")
	limit := fs.Int("limit", 0, "maximum number of trades")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	return usecase.GetTrades(ctx, *mkt, *period, *limit)
}

func runDeltas(ctx context.Context, usecase marketdata.Usecase, args []string) (any, error) {
	fs := newFlagSet("deltas")
	mkt := fs.String("market", "xbtusd", "market identifier")
	since := fs.Int64("since", 0, "watermark in unix milliseconds, 0 for the latest fills")
	limit := fs.Int("limit", 0, "maximum number of fills")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	return usecase.GetTradeDeltas(ctx, *mkt, *since, *limit)
}

func runView(ctx context.Context, usecase marketdata.Usecase, args []string) (any, error) {
	fs := newFlagSet("view")
	mkt := fs.String("market", "xbtusd", "market identifier")
	period := fs.String("period", "", "candle period")
	limit := fs.Int("limit", 0, "maximum candles and trades")
	depth := fs.Int("depth", 0, "order book levels per side")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	return usecase.GetMarketView(ctx, marketdata.ViewQuery{
		Market: *mkt,
		Period: *period,
		Limit:  *limit,
		Depth:  *depth,
	})
}

func runMarkets(_ context.Context, usecase marketdata.Usecase, args []string) (any, error) {
	if err := parse(newFlagSet("markets"), args); err != nil {
		return nil, err
	}
	return usecase.Markets(), nil
}
