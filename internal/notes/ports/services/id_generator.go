// Package services defines service interfaces for the notes application.
package services

import "time"

// IDGenerator выдает уникальные идентификаторы заметок и папок.
type IDGenerator interface {
	NewNoteID() string
	NewFolderID() string
}

// Clock возвращает текущее время.
type Clock interface {
	Now() time.Time
}
