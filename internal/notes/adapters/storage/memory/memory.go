// Package memory provides an in-process snapshot storage for ephemeral sessions and tests.
package memory

import (
	"context"
	"errors"
	"maps"
	"sync"

	"localnotes/internal/notes/ports/repositories"
)

// ErrClosed is returned by operations on a closed storage.
var ErrClosed = errors.New("memory storage is closed")

var _ repositories.SnapshotStorage = (*Storage)(nil)

// Storage keeps values in a map.
type Storage struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// New creates a storage preloaded with initial values.
func New(initial map[string]string) *Storage {
	data := make(map[string]string, len(initial))
	maps.Copy(data, initial)
	return &Storage{data: data}
}

// Get returns the value stored under key.
func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrClosed
	}
	value, ok := s.data[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.data[key] = value
	return nil
}

// Close marks the storage closed. Values stay readable through Dump.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Dump returns a copy of every stored value.
func (s *Storage) Dump() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}
