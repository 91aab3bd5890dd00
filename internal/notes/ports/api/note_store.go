// Package api defines the inbound port that UI layers use to drive the note store.
package api

import (
	"context"

	"localnotes/internal/notes/domain/entities"
)

// EventKind описывает вид изменения состояния хранилища.
type EventKind string

// Виды изменений.
const (
	NoteCreated         EventKind = "note_created"
	NoteUpdated         EventKind = "note_updated"
	NoteDeleted         EventKind = "note_deleted"
	NoteDuplicated      EventKind = "note_duplicated"
	FavoriteToggled     EventKind = "favorite_toggled"
	FolderCreated       EventKind = "folder_created"
	FolderDeleted       EventKind = "folder_deleted"
	ActiveNoteChanged   EventKind = "active_note_changed"
	ActiveFolderChanged EventKind = "active_folder_changed"
)

// Event - уведомление об изменении, доставляемое подписчикам после каждой мутации.
type Event struct {
	Kind     EventKind
	NoteID   string
	FolderID string
}

// NoteStore - API мутаций и запросов над заметками и папками.
type NoteStore interface {
	CreateNote(ctx context.Context, folderID string) entities.Note
	UpdateNote(ctx context.Context, noteID, title, content string) (entities.Note, bool)
	DeleteNote(ctx context.Context, noteID string) bool
	ToggleFavorite(ctx context.Context, noteID string) (entities.Note, bool)
	DuplicateNote(ctx context.Context, noteID string) (entities.Note, bool)
	SearchNotes(query string) []entities.Note

	CreateFolder(ctx context.Context, name string) entities.Folder
	DeleteFolder(ctx context.Context, folderID string) bool

	SetActiveNote(noteID string)
	SetActiveFolder(folderID string)

	Notes() []entities.Note
	Folders() []entities.Folder
	UserFolders() []entities.Folder
	ActiveNote() (entities.Note, bool)
	ActiveFolder() string
	VisibleNotes(query string) []entities.Note
	Locale() entities.Locale

	Subscribe(fn func(Event)) (unsubscribe func())
}
