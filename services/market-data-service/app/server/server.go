package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/bootstrap"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
)

// Server runs the live candle pipeline and the health endpoint.
type Server struct {
	Bootstrap bootstrap.Bootstrap
	Config    *config.Config
	logger    logger.Interface
	db        questdb.QuestDBClient
	redis     redis.Client
	health    *http.Server

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// InitServer connects the data stores and wires the service.
func InitServer(ctx context.Context, cfg *config.Config, log logger.Interface) (*Server, error) {
	server := &Server{
		Config: cfg,
		logger: log,
	}

	if err := server.initDB(ctx); err != nil {
		return nil, err
	}
	if err := server.initRedis(ctx); err != nil {
		server.db.Close()
		return nil, err
	}

	b := &bootstrap.Bootstrap{}
	bs, err := b.Init(bootstrap.BoostrapConfig{
		Config:  cfg,
		QuestDB: server.db,
		Redis:   server.redis,
		Logger:  log,
	})
	if err != nil {
		server.close(ctx)
		return nil, err
	}
	server.Bootstrap = bs

	server.initHealth()

	return server, nil
}

func (s *Server) initDB(ctx context.Context) error {
	questdbClient, err := questdb.NewClient(ctx, s.Config.QuestDB)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("action", "init_db"))
		return err
	}

	s.db = questdbClient
	return nil
}

func (s *Server) initRedis(ctx context.Context) error {
	if !s.Config.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&s.Config.Redis)
	if err := client.Connect(ctx); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("action", "init_redis"))
		return err
	}

	s.redis = client
	return nil
}

func (s *Server) initHealth() {
	hc := healthcheck.New(2 * time.Second)
	hc.Register("questdb", s.db.Ping)
	if s.redis != nil {
		hc.Register("redis", s.redis.Ping)
	}

	s.health = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Config.App.HealthPort),
		Handler:           hc.Handler(http.NotFoundHandler()),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Start subscribes the configured pairs and starts the feed. It returns once
// everything is running.
func (s *Server) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	live := s.Bootstrap.Live

	if err := live.Registry.Start(ctx); err != nil {
		return err
	}
	for _, pair := range live.Pairs {
		if err := live.Registry.Subscribe(ctx, pair.Market, pair.Period); err != nil {
			return err
		}
	}

	s.goRun(func() {
		if err := s.health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(err, logger.NewField("action", "health_server"))
		}
	})

	if live.Watcher != nil {
		s.goRun(func() { live.Watcher.Start(ctx) })
	}
	if live.Poller != nil {
		s.goRun(func() { _ = live.Poller.Run(ctx) })
	}
	if live.Consumer != nil {
		s.goRun(func() { _ = live.Consumer.Start(ctx) })
	}

	s.logger.InfoContext(ctx, "market data service started",
		logger.NewField("app", s.Config.App.Name),
		logger.NewField("environment", s.Config.App.Environment),
		logger.NewField("feed", s.Config.Live.Feed),
		logger.NewField("pairs", len(live.Pairs)),
		logger.NewField("health_port", s.Config.App.HealthPort),
	)
	return nil
}

func (s *Server) goRun(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Stop stops the feed, drains the live registry and closes the data stores.
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	live := s.Bootstrap.Live
	if live.Consumer != nil {
		if err := live.Consumer.Stop(); err != nil {
			s.logger.Error(err, logger.NewField("action", "trade_consumer_stop"))
		}
	}
	if live.Watcher != nil {
		if err := live.Watcher.Close(); err != nil {
			s.logger.Error(err, logger.NewField("action", "trade_log_watch_stop"))
		}
	}
	if err := s.health.Shutdown(ctx); err != nil {
		s.logger.Error(err, logger.NewField("action", "health_server_stop"))
	}

	s.wg.Wait()

	err := live.Registry.Stop(ctx)
	s.close(ctx)
	return err
}

func (s *Server) close(ctx context.Context) {
	if s.redis != nil {
		if err := s.redis.Disconnect(ctx); err != nil {
			s.logger.Error(err, logger.NewField("action", "close_redis"))
		}
	}
	s.db.Close()
}
