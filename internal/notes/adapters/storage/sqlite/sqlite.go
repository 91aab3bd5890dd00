// Package sqlite stores snapshot keys in a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"localnotes/internal/notes/ports/repositories"
	"localnotes/pkg/logger"
)

// Константы для сообщений logger и ошибок.
const (
	LogOpening = "opening SQLite snapshot storage"

	ErrOpen       = "failed to open SQLite database"
	ErrInitSchema = "failed to initialize SQLite schema"
	ErrGet        = "failed to read snapshot key"
	ErrSet        = "failed to write snapshot key"

	driverName = "sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_snapshots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

var _ repositories.SnapshotStorage = (*Storage)(nil)

// Storage is a SQLite-backed key-value table.
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the schema exists.
func New(ctx context.Context, path string) (*Storage, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogOpening, zap.String("path", path))

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpen, err)
	}
	// Single writer; also keeps ":memory:" databases on one connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode = WAL", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			log.Error(ctx, ErrInitSchema, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrInitSchema, err)
		}
	}

	return &Storage{db: db}, nil
}

// Get returns the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_snapshots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s %q: %w", ErrGet, key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrSet, key, err)
	}
	return nil
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}
