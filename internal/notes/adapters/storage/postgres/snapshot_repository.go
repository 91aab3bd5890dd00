// Package postgres provides a PostgreSQL implementation of the snapshot storage.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"localnotes/internal/notes/ports/repositories"
	pgpkg "localnotes/pkg/db/postgres"
	"localnotes/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrGettingSnapshot = "failed to get snapshot"
	ErrSavingSnapshot  = "failed to save snapshot"
)

var _ repositories.SnapshotStorage = (*SnapshotRepository)(nil)

// SnapshotRepository реализует repositories.SnapshotStorage поверх таблицы snapshots.
type SnapshotRepository struct {
	pool pgpkg.Pool
}

// NewSnapshotRepository создает новый репозиторий снимков.
func NewSnapshotRepository(pool pgpkg.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Get получает значение ключа.
func (r *SnapshotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "SnapshotRepository.Get"))
	log.Debug(ctx, "getting snapshot", zap.String("key", key))

	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value::text FROM snapshots WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "snapshot not found", zap.String("key", key))
			return "", false, nil
		}
		log.Error(ctx, ErrGettingSnapshot, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrGettingSnapshot, err)
	}

	return value, true, nil
}

// Set сохраняет значение ключа, перезаписывая предыдущее.
func (r *SnapshotRepository) Set(ctx context.Context, key, value string) error {
	log := logger.Log(ctx).With(zap.String("method", "SnapshotRepository.Set"))
	log.Debug(ctx, "saving snapshot", zap.String("key", key))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO snapshots (key, value, updated_at) VALUES ($1, $2::jsonb, NOW())
         ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value,
	)
	if err != nil {
		log.Error(ctx, ErrSavingSnapshot, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSavingSnapshot, err)
	}

	return nil
}

// Close закрывает пул соединений.
func (r *SnapshotRepository) Close() error {
	r.pool.Close()
	return nil
}
