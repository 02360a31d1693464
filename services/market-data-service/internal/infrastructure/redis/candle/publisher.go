package candle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/muhammadchandra19/exchange/pkg/redis"
	live "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
)

// RedisPublisher publishes candle events on channel <prefix><market>:<period>.
type RedisPublisher struct {
	client redis.Client
	prefix string
}

var _ Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher creates a new publisher.
func NewRedisPublisher(client redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		prefix: prefix,
	}
}

// Channel returns the channel a pair is published on.
func (p *RedisPublisher) Channel(market, period string) string {
	return p.prefix + market + ":" + period
}

// Publish sends the event as JSON.
func (p *RedisPublisher) Publish(ctx context.Context, event live.CandleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode candle event: %w", err)
	}

	if _, err := p.client.Publish(ctx, p.Channel(event.Market, event.Period), string(payload)); err != nil {
		return err
	}
	return nil
}

// NopPublisher drops every event. Used when Redis is disabled.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, live.CandleEvent) error {
	return nil
}
