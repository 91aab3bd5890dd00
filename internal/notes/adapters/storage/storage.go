// Package storage выбирает и открывает бэкенд хранилища снимков по конфигурации.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"localnotes/internal/notes/adapters/storage/file"
	"localnotes/internal/notes/adapters/storage/memory"
	"localnotes/internal/notes/adapters/storage/postgres"
	"localnotes/internal/notes/adapters/storage/redis"
	"localnotes/internal/notes/adapters/storage/sqlite"
	"localnotes/internal/notes/config"
	"localnotes/internal/notes/db"
	"localnotes/internal/notes/ports/repositories"
	redispkg "localnotes/pkg/db/redis"
	"localnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogOpeningStorage = "opening snapshot storage"
	LogStorageOpened  = "snapshot storage opened"
)

// ErrUnknownDriver is returned for a driver name Open does not support.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the snapshot storage selected by cfg.Storage.Driver.
// The caller owns the result and must Close it.
func Open(ctx context.Context, cfg *config.Config) (repositories.SnapshotStorage, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Storage.Driver))
	log.Info(ctx, LogOpeningStorage)

	var (
		store repositories.SnapshotStorage
		err   error
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store = memory.New(nil)
	case config.DriverFile:
		store, err = file.New(cfg.Storage.Dir)
	case config.DriverSQLite:
		store, err = sqlite.New(ctx, cfg.Storage.SQLitePath)
	case config.DriverRedis:
		store, err = openRedis(ctx, &cfg.Redis)
	case config.DriverPostgres:
		store, err = openPostgres(ctx, &cfg.Postgres)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
	if err != nil {
		log.Error(ctx, "failed to open snapshot storage", zap.Error(err))
		return nil, err
	}

	log.Info(ctx, LogStorageOpened)
	return store, nil
}

func openRedis(ctx context.Context, cfg *config.RedisConfig) (repositories.SnapshotStorage, error) {
	client, err := redispkg.NewClient(ctx, cfg.ToClientConfig())
	if err != nil {
		return nil, err
	}
	return redis.New(client, cfg.KeyPrefix), nil
}

func openPostgres(ctx context.Context, cfg *config.PostgresConfig) (repositories.SnapshotStorage, error) {
	database, err := db.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return postgres.NewSnapshotRepository(database.Pool()), nil
}
