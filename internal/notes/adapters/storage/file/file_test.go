package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localnotes/internal/notes/adapters/storage/file"
)

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := file.New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reports not found", func(t *testing.T) {
		s, err := file.New(t.TempDir())
		require.NoError(t, err)

		value, found, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set writes key file and get reads it back", func(t *testing.T) {
		dir := t.TempDir()
		s, err := file.New(dir)
		require.NoError(t, err)

		require.NoError(t, s.Set(ctx, "folders", `[{"id":"all","name":"All notes"}]`))

		raw, err := os.ReadFile(filepath.Join(dir, "folders.json"))
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"all","name":"All notes"}]`, string(raw))

		value, found, err := s.Get(ctx, "folders")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, string(raw), value)
	})

	t.Run("overwrite replaces value and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		s, err := file.New(dir)
		require.NoError(t, err)

		require.NoError(t, s.Set(ctx, "notes", "[1]"))
		require.NoError(t, s.Set(ctx, "notes", "[]"))

		value, _, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.Equal(t, "[]", value)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "notes.json", entries[0].Name())
	})

	t.Run("rejects keys that escape the directory", func(t *testing.T) {
		s, err := file.New(t.TempDir())
		require.NoError(t, err)

		assert.ErrorIs(t, s.Set(ctx, "../notes", "[]"), file.ErrInvalidKey)
		_, _, err = s.Get(ctx, "a/b")
		assert.ErrorIs(t, err, file.ErrInvalidKey)
	})

	t.Run("reopened storage sees previous writes", func(t *testing.T) {
		dir := t.TempDir()
		first, err := file.New(dir)
		require.NoError(t, err)
		require.NoError(t, first.Set(ctx, "notes", `[{"id":"note-1"}]`))
		require.NoError(t, first.Close())

		second, err := file.New(dir)
		require.NoError(t, err)
		value, found, err := second.Get(ctx, "notes")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"note-1"}]`, value)
	})
}
