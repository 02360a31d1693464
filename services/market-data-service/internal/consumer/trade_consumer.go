package consumer

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
	liveDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/interval"
	"github.com/segmentio/kafka-go"
)

// TradeMessage is the payload of the trade topic.
type TradeMessage struct {
	Market string `json:"market"`
	trade.Fill
}

// TradeConsumer is the consumer for the trade topic. Every decoded trade is handed
// to the dispatcher; undecodable messages are logged and committed so they don't
// block the partition.
type TradeConsumer struct {
	reader     MessageReader
	dispatcher liveDomain.Dispatcher
	logger     logger.Interface

	maxRetries int
	retryDelay time.Duration
}

// NewTradeConsumer creates a new TradeConsumer reading from the configured topic.
func NewTradeConsumer(config config.KafkaConfig, dispatcher liveDomain.Dispatcher, logger logger.Interface) *TradeConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     config.ConsumerTimeout,
		StartOffset: kafka.LastOffset,
	})
	c := NewTradeConsumerWithReader(kafkaReader, dispatcher, logger)
	c.maxRetries = config.MaxRetries
	return c
}

// NewTradeConsumerWithReader creates a TradeConsumer on top of an existing reader.
func NewTradeConsumerWithReader(reader MessageReader, dispatcher liveDomain.Dispatcher, logger logger.Interface) *TradeConsumer {
	return &TradeConsumer{
		reader:     reader,
		dispatcher: dispatcher,
		logger:     logger,
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
	}
}

// Start consumes until ctx is done.
func (c *TradeConsumer) Start(ctx context.Context) error {
	c.logger.InfoContext(ctx, "starting trade consumer", logger.NewField("action", "trade_consumer_start"))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("context done", logger.NewField("action", "trade_consumer_stop"))
				return ctx.Err()
			}
			c.logger.ErrorContext(ctx, err, logger.NewField("action", "read_message"))
			if !c.sleep(ctx) {
				return ctx.Err()
			}
			continue
		}

		msgCtx := util.WithRequestID(ctx, "")
		if err := c.handleTrade(msg); err != nil {
			c.logger.ErrorContext(msgCtx, err,
				logger.NewField("action", "handle_trade"),
				logger.NewField("offset", msg.Offset),
			)
		}

		c.commit(msgCtx, msg)
	}
}

// Stop stops the TradeConsumer.
func (c *TradeConsumer) Stop() error {
	c.logger.Info("stopping trade consumer", logger.NewField("action", "trade_consumer_stop"))
	return c.reader.Close()
}

func (c *TradeConsumer) handleTrade(msg kafka.Message) error {
	var payload TradeMessage
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return errors.NewMalformedInput("message", "undecodable trade: %v", err)
	}

	mkt, err := market.Lookup(payload.Market)
	if err != nil {
		return err
	}
	if math.IsNaN(payload.Price) || math.IsInf(payload.Price, 0) {
		return errors.NewMalformedInput("p", "non-finite trade price")
	}
	if math.IsNaN(payload.Amount) || math.IsInf(payload.Amount, 0) || payload.Amount < 0 {
		return errors.NewMalformedInput("a", "invalid trade amount %v", payload.Amount)
	}
	if payload.TimestampMs < 0 {
		return errors.NewMalformedInput("t", "negative trade timestamp %d", payload.TimestampMs)
	}

	c.dispatcher.OnTrade(liveDomain.Trade{
		Market:       mkt.ID,
		TimestampSec: interval.MillisToSeconds(payload.TimestampMs),
		Price:        payload.Price,
		Amount:       payload.Amount,
	})
	return nil
}

func (c *TradeConsumer) commit(ctx context.Context, msg kafka.Message) {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err = c.reader.CommitMessages(ctx, msg); err == nil {
			return
		}
		if !c.sleep(ctx) {
			break
		}
	}
	c.logger.ErrorContext(ctx, err,
		logger.NewField("action", "commit_message"),
		logger.NewField("offset", msg.Offset),
	)
}

func (c *TradeConsumer) sleep(ctx context.Context) bool {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
