package config

import (
	"time"

	pkgconfig "github.com/muhammadchandra19/exchange/pkg/config"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App          AppConfig      `envPrefix:"APP_"`
	QuestDB      questdb.Config `envPrefix:"QUESTDB_"`
	Query        QueryConfig    `envPrefix:"QUERY_"`
	Live         LiveConfig     `envPrefix:"LIVE_"`
	Redis        redis.Config   `envPrefix:"REDIS_"`
	TradeKafka   KafkaConfig    `envPrefix:"KAFKA_"`
	MigrationDir string         `env:"MIGRATION_DIR"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"market-data-service"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HealthPort  int    `env:"HEALTH_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// QueryConfig tunes the query path.
type QueryConfig struct {
	Timeout         time.Duration `env:"TIMEOUT" envDefault:"5s"`
	OrderbookWindow int           `env:"ORDERBOOK_WINDOW" envDefault:"1000"`
	TickWindow      int           `env:"TICK_WINDOW" envDefault:"100000"`
	DefaultLimit    int           `env:"DEFAULT_LIMIT" envDefault:"100"`
	DefaultDepth    int           `env:"DEFAULT_DEPTH" envDefault:"25"`
	DefaultPeriod   string        `env:"DEFAULT_PERIOD" envDefault:"1h"`
	DeltaLimit      int           `env:"DELTA_LIMIT" envDefault:"500"`
	// CacheTTL of zero disables the candle cache.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"2s"`
}

// Feed kinds.
const (
	FeedQuestDB  = "questdb"
	FeedTradeLog = "tradelog"
	FeedKafka    = "kafka"
)

// LiveConfig configures the live candle pipeline.
type LiveConfig struct {
	Markets       []string      `env:"MARKETS" envSeparator:","`
	Periods       []string      `env:"PERIODS" envSeparator:"," envDefault:"1m"`
	Feed          string        `env:"FEED" envDefault:"questdb"`
	PollInterval  time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	DeltaLimit    int           `env:"DELTA_LIMIT" envDefault:"500"`
	TradeLogPath  string        `env:"TRADE_LOG_PATH" envDefault:"trades.json"`
	ChannelPrefix string        `env:"CHANNEL_PREFIX" envDefault:"candles:"`
	InboxSize     int           `env:"INBOX_SIZE" envDefault:"1024"`
	HistoryLimit  int           `env:"HISTORY_LIMIT" envDefault:"2"`
}

// KafkaConfig represents the Kafka trade topic configuration.
type KafkaConfig struct {
	Brokers         []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic           string        `env:"TOPIC" envDefault:"trades"`
	ConsumerGroup   string        `env:"CONSUMER_GROUP" envDefault:"market-data-service"`
	ConsumerTimeout time.Duration `env:"CONSUMER_TIMEOUT" envDefault:"5s"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"3"`
}

// Load loads the configuration from the environment and an optional .env file.
func Load(files ...string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, files...); err != nil {
		return nil, err
	}
	return cfg, nil
}
