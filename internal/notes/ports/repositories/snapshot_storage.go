// Package repositories defines persistence ports for the notes application.
package repositories

import "context"

// SnapshotStorage - долговременное key-value хранилище снимка заметок и папок.
type SnapshotStorage interface {
	// Get возвращает значение по ключу; found=false, если ключ отсутствует.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set перезаписывает значение по ключу целиком.
	Set(ctx context.Context, key, value string) error

	Close() error
}
