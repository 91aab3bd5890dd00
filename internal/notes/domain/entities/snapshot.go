package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Ключи хранилища снимка.
const (
	NotesKey   = "notes"
	FoldersKey = "folders"
)

// ErrCorruptSnapshot is returned when a persisted collection cannot be decoded.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the persisted state: both collections in display order.
type Snapshot struct {
	Notes   []Note
	Folders []Folder
}

// DefaultSnapshot returns the seed state used when nothing is persisted.
func DefaultSnapshot(locale Locale) Snapshot {
	return Snapshot{
		Notes:   []Note{},
		Folders: locale.DefaultFolders(),
	}
}

// EncodeNotes serializes notes as a JSON array; nil encodes as [].
func EncodeNotes(notes []Note) (string, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", NotesKey, err)
	}
	return string(data), nil
}

// EncodeFolders serializes folders as a JSON array; nil encodes as [].
func EncodeFolders(folders []Folder) (string, error) {
	if folders == nil {
		folders = []Folder{}
	}
	data, err := json.Marshal(folders)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", FoldersKey, err)
	}
	return string(data), nil
}

// DecodeNotes parses a persisted notes array.
func DecodeNotes(raw string) ([]Note, error) {
	notes := []Note{}
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, NotesKey, err)
	}
	return notes, nil
}

// DecodeFolders parses a persisted folders array.
func DecodeFolders(raw string) ([]Folder, error) {
	folders := []Folder{}
	if err := json.Unmarshal([]byte(raw), &folders); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, FoldersKey, err)
	}
	return folders, nil
}
