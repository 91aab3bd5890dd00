// Package redis stores snapshot keys in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"localnotes/internal/notes/ports/repositories"
	"localnotes/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet = "get"
	LogMethodSet = "set"

	ErrorFailedToGet   = "failed to get value from redis"
	ErrorFailedToSet   = "failed to set value in redis"
	ErrorFailedToClose = "failed to close redis connection"
)

var _ repositories.SnapshotStorage = (*Storage)(nil)

// Storage keeps each snapshot key as a Redis string without expiry.
type Storage struct {
	client *goredis.Client
	prefix string
}

// New wraps a connected client. prefix is prepended to every key.
func New(client *goredis.Client, prefix string) *Storage {
	return &Storage{client: client, prefix: prefix}
}

// Get получает значение по ключу.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", s.prefix+key))

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return value, true, nil
}

// Set устанавливает значение без TTL.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", s.prefix+key))

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (s *Storage) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
