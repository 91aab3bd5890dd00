// Package entities defines the domain entities for the notes application.
package entities

import (
	"strings"
	"time"
)

// Note представляет собой заметку пользователя.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  string    `json:"folderId"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
	Favorite  bool      `json:"favorite"`
}

// NewNote creates an empty note in the given folder stamped with now.
func NewNote(id, folderID, title string, now time.Time) Note {
	ts := NewTimestamp(now)
	return Note{
		ID:        id,
		Title:     title,
		Content:   "",
		FolderID:  folderID,
		CreatedAt: ts,
		UpdatedAt: ts,
		Favorite:  false,
	}
}

// Duplicate returns a copy of the note under a new id with suffix appended to the title.
// Both timestamps are reset to now.
func (n Note) Duplicate(id, suffix string, now time.Time) Note {
	ts := NewTimestamp(now)
	dup := n
	dup.ID = id
	dup.Title = n.Title + suffix
	dup.CreatedAt = ts
	dup.UpdatedAt = ts
	return dup
}

// Matches reports whether the lower-cased query is a substring of the title or content.
func (n Note) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(n.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(n.Content), lowerQuery)
}
