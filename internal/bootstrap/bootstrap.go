// Package bootstrap wires configuration into a ready junta service. The
// server, the scheduler and juntactl all start from here.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/yunta/internal/cache"
	"github.com/segyhp/yunta/internal/config"
	"github.com/segyhp/yunta/internal/repository"
	"github.com/segyhp/yunta/internal/service"
)

type App struct {
	Config  *config.Config
	DB      *sqlx.DB
	Redis   *redis.Client
	Service *service.JuntaService
}

// New opens the database, connects redis when configured and builds the service
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisClient := initRedis(cfg)

	reports := cache.NewNoopReportCache()
	if redisClient != nil {
		reports = cache.NewRedisReportCache(redisClient, cfg.GetReportCacheTTL())
	} else {
		slog.Info("REDIS_HOST is empty, archived reports will not be cached")
	}

	juntaService := service.NewJuntaService(
		repository.NewJuntaRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewTransactor(db),
		reports,
		cfg,
	)

	return &App{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Service: juntaService,
	}, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// Close releases the redis client and the database
func (a *App) Close() error {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Warn("closing redis", "error", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
