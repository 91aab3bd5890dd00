// Package services provides implementations of the notes service ports.
package services

import (
	"github.com/google/uuid"

	ports "localnotes/internal/notes/ports/services"
)

// Префиксы идентификаторов.
const (
	NotePrefix   = "note-"
	FolderPrefix = "folder-"
)

var _ ports.IDGenerator = UUIDGenerator{}

// UUIDGenerator выдает идентификаторы вида "note-<uuid>" и "folder-<uuid>".
type UUIDGenerator struct{}

// NewUUIDGenerator создает генератор идентификаторов на основе UUID v4.
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// NewNoteID возвращает новый идентификатор заметки.
func (UUIDGenerator) NewNoteID() string {
	return NotePrefix + uuid.NewString()
}

// NewFolderID возвращает новый идентификатор папки.
func (UUIDGenerator) NewFolderID() string {
	return FolderPrefix + uuid.NewString()
}
