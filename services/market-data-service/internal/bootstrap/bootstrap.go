package bootstrap

import (
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
)

// Bootstrap is the bootstrap for the market data service.
type Bootstrap struct {
	Config     *config.Config
	Logger     logger.Interface
	Repository Repository
	Cache      Cache
	Usecase    Usecase
	Live       Live

	QuestDB questdb.QuestDBClient
	Redis   redis.Client
}

// BoostrapConfig is the config for the bootstrap. Redis may be nil, which disables
// the candle cache and live publishing.
type BoostrapConfig struct {
	Config  *config.Config
	QuestDB questdb.QuestDBClient
	Redis   redis.Client
	Logger  logger.Interface
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BoostrapConfig) (Bootstrap, error) {
	b.Config = config.Config
	b.QuestDB = config.QuestDB
	b.Redis = config.Redis
	b.Logger = config.Logger

	b.registerRepository()
	b.registerCache()
	b.registerUsecase()
	if err := b.registerLive(); err != nil {
		return Bootstrap{}, err
	}

	return *b, nil
}
