package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/consumer"
	market "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/market/v1"
	trade "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/trade/v1"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/feed/tradelog"
	"github.com/segmentio/kafka-go"
)

// generateTrades creates a random walk of fills ending at now.
func generateTrades(rng *rand.Rand, count int, basePrice, volatility float64, step time.Duration) []trade.Fill {
	fills := make([]trade.Fill, count)
	price := basePrice
	start := time.Now().Add(-time.Duration(count) * step)

	for i := 0; i < count; i++ {
		next := price * (1 + rng.NormFloat64()*volatility)
		if next <= 0 {
			next = basePrice
		}

		side := trade.SideSell
		if next > price {
			side = trade.SideBuy
		}
		price = math.Round(next*10) / 10

		// Size between 0.001 and 5, rounded to 3 decimal places
		size := math.Round((0.001+rng.Float64()*5)*1000) / 1000

		fills[i] = trade.Fill{
			TimestampMs: start.Add(time.Duration(i) * step).UnixMilli(),
			Price:       price,
			Amount:      size,
			Side:        side,
		}
	}

	return fills
}

func loadTrades(path string, mkt market.Market) ([]consumer.TradeMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file tradelog.File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	messages := make([]consumer.TradeMessage, 0, len(file.Trades))
	for _, entry := range file.Trades {
		id := mkt.ID
		if entry.Market != "" {
			id = entry.Market
		}
		messages = append(messages, consumer.TradeMessage{Market: id, Fill: entry.ToFill()})
	}
	return messages, nil
}

func main() {
	var (
		brokers    = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic      = flag.String("topic", "trades", "Kafka topic name")
		marketID   = flag.String("market", "xbtusd", "Market the trades belong to")
		file       = flag.String("file", "", "JSON trade log to replay (optional, generates trades if not provided)")
		delay      = flag.Duration("delay", 100*time.Millisecond, "Delay between sending trades")
		count      = flag.Int("count", 1000, "Number of trades to generate")
		basePrice  = flag.Float64("base-price", 65000, "Starting price for generated trades")
		volatility = flag.Float64("volatility", 0.0005, "Per-trade relative price volatility")
		step       = flag.Duration("step", time.Second, "Time between generated trades")
	)
	flag.Parse()

	mkt, err := market.Lookup(*marketID)
	if err != nil {
		log.Fatalf("Invalid market: %v", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var messages []consumer.TradeMessage
	if *file != "" {
		messages, err = loadTrades(*file, mkt)
		if err != nil {
			log.Fatalf("Failed to load trades from %s: %v", *file, err)
		}
		log.Printf("Loaded %d trades from file: %s", len(messages), *file)
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		for _, fill := range generateTrades(rng, *count, *basePrice, *volatility, *step) {
			messages = append(messages, consumer.TradeMessage{Market: mkt.ID, Fill: fill})
		}
		log.Printf("Generated %d trades", len(messages))
	}

	log.Printf("Sending trades to Kafka broker: %s, topic: %s", *brokers, *topic)

	buys, sells := 0, 0
	for i, msg := range messages {
		payload, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Failed to marshal trade %d: %v", i+1, err)
			continue
		}

		// Keyed by market so one market stays on one partition, in order.
		if err := writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(msg.Market),
			Value: payload,
			Time:  time.Now(),
		}); err != nil {
			log.Printf("Failed to send trade %d: %v", i+1, err)
			continue
		}

		if msg.Side == trade.SideBuy {
			buys++
		} else {
			sells++
		}

		if (i+1)%100 == 0 || i == len(messages)-1 {
			log.Printf("Sent trade %d/%d: %s %s %.3f @ %.1f",
				i+1, len(messages), msg.Market, msg.Side, msg.Amount, msg.Price)
		}

		if i < len(messages)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("--- Summary ---")
	log.Printf("Total Trades: %d", len(messages))
	log.Printf("Buy Trades: %d", buys)
	log.Printf("Sell Trades: %d", sells)
}
