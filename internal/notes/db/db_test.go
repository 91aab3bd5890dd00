package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localnotes/internal/notes/config"
	"localnotes/internal/notes/db"
	"localnotes/pkg/logger"
)

func TestMigrationsSource(t *testing.T) {
	t.Run("absolute path", func(t *testing.T) {
		src, err := db.MigrationsSource("/srv/migrations/notes")
		require.NoError(t, err)
		assert.Equal(t, "file:///srv/migrations/notes", src)
	})

	t.Run("relative path is resolved", func(t *testing.T) {
		src, err := db.MigrationsSource("migrations/notes")
		require.NoError(t, err)

		abs, err := filepath.Abs("migrations/notes")
		require.NoError(t, err)
		assert.Equal(t, "file://"+abs, src)
	})

	t.Run("source url is kept", func(t *testing.T) {
		src, err := db.MigrationsSource("file:///already/url")
		require.NoError(t, err)
		assert.Equal(t, "file:///already/url", src)
	})
}

func TestNew_UnreachableDatabase(t *testing.T) {
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	ctx := logger.NewContext(context.Background(), testLogger)

	cfg := &config.PostgresConfig{
		Host:       "127.0.0.1",
		Port:       1,
		User:       "postgres",
		Password:   "postgres",
		Database:   "notes",
		MinConn:    1,
		MaxConn:    2,
		Migrations: "../../../migrations/notes",
	}

	database, err := db.New(ctx, cfg)

	require.Error(t, err)
	assert.Nil(t, database)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}
