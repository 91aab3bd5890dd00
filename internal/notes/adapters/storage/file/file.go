// Package file stores each snapshot key as a JSON file in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"localnotes/internal/notes/ports/repositories"
	"localnotes/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrCreateDir = "failed to create storage directory"
	ErrReadKey   = "failed to read key"
	ErrWriteKey  = "failed to write key"

	fileExt  = ".json"
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrInvalidKey is returned for keys that cannot be used as file names.
var ErrInvalidKey = errors.New("invalid storage key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var _ repositories.SnapshotStorage = (*Storage)(nil)

// Storage maps key to <dir>/<key>.json. Writes go through a temp file and rename
// so a crash never leaves a half-written snapshot.
type Storage struct {
	mu  sync.Mutex
	dir string
}

// New creates the directory if needed.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateDir, err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *Storage) Dir() string {
	return s.dir
}

// Get reads the file for key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrReadKey, zap.String("path", path), zap.Error(err))
		return "", false, fmt.Errorf("%s %q: %w", ErrReadKey, key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file for key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(path, []byte(value)); err != nil {
		logger.Log(ctx).Error(ctx, ErrWriteKey, zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %q: %w", ErrWriteKey, key, err)
	}
	return nil
}

// Close is a no-op; files are closed after every operation.
func (s *Storage) Close() error {
	return nil
}

func (s *Storage) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
