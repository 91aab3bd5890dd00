// Package app реализует хранилище заметок: единственный источник истины для заметок,
// папок и текущего выбора.
package app

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"localnotes/internal/notes/domain/entities"
	"localnotes/internal/notes/ports/api"
	"localnotes/internal/notes/ports/repositories"
	"localnotes/internal/notes/ports/services"
	"localnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogNoteCreated     = "note created"
	LogNoteUpdated     = "note updated"
	LogNoteDeleted     = "note deleted"
	LogNoteDuplicated  = "note duplicated"
	LogFavoriteToggled = "note favorite toggled"
	LogFolderCreated   = "folder created"
	LogFolderDeleted   = "folder deleted"
	LogNoteNotFound    = "note not found, ignoring"
	LogFolderIgnored   = "folder not deletable or not found, ignoring"
	LogPersistFailed   = "failed to persist snapshot, keeping in-memory state"
)

var _ api.NoteStore = (*NoteStore)(nil)

// NoteStore владеет коллекциями заметок и папок и активным выбором.
// Каждая мутация целиком перезаписывает затронутую коллекцию в хранилище снимка,
// затем уведомляет подписчиков.
type NoteStore struct {
	mu           sync.RWMutex
	notes        []entities.Note
	folders      []entities.Folder
	activeNoteID string
	activeFolder string

	storage repositories.SnapshotStorage
	ids     services.IDGenerator
	clock   services.Clock
	locale  entities.Locale

	subsMu  sync.Mutex
	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn func(api.Event)
}

// Option настраивает NoteStore.
type Option func(*NoteStore)

// WithLocale задает локаль для заголовков новых заметок и суффикса копий.
func WithLocale(locale entities.Locale) Option {
	return func(s *NoteStore) {
		s.locale = locale
	}
}

// NewNoteStore создает хранилище поверх снимка. Папка по умолчанию добавляется,
// если ее нет, а заметки из неизвестных папок переносятся в нее.
// До первой мутации ничего не записывается.
func NewNoteStore(
	snapshot entities.Snapshot,
	storage repositories.SnapshotStorage,
	ids services.IDGenerator,
	clock services.Clock,
	opts ...Option,
) *NoteStore {
	s := &NoteStore{
		notes:        slices.Clone(snapshot.Notes),
		folders:      slices.Clone(snapshot.Folders),
		activeFolder: entities.AllFolderID,
		storage:      storage,
		ids:          ids,
		clock:        clock,
		locale:       entities.English,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.notes == nil {
		s.notes = []entities.Note{}
	}
	if s.folderIndex(entities.DefaultFolderID) < 0 {
		s.folders = append(s.folders, entities.Folder{ID: entities.DefaultFolderID, Name: s.locale.PersonalFolder})
	}
	for i := range s.notes {
		if !s.ownsNotes(s.notes[i].FolderID) {
			s.notes[i].FolderID = entities.DefaultFolderID
		}
	}

	return s
}

// Locale возвращает локаль хранилища.
func (s *NoteStore) Locale() entities.Locale {
	return s.locale
}

// CreateNote добавляет в начало заметку без названия и делает ее активной.
// folderID, не указывающий на реальную папку, заменяется папкой по умолчанию.
func (s *NoteStore) CreateNote(ctx context.Context, folderID string) entities.Note {
	s.mu.Lock()
	if !s.ownsNotes(folderID) {
		folderID = entities.DefaultFolderID
	}
	note := entities.NewNote(s.ids.NewNoteID(), folderID, s.locale.UntitledNote, s.clock.Now())
	s.notes = slices.Insert(s.notes, 0, note)
	s.activeNoteID = note.ID
	s.persist(ctx, entities.NotesKey)
	s.mu.Unlock()

	logger.Log(ctx).Debug(ctx, LogNoteCreated,
		zap.String("method", "NoteStore.CreateNote"),
		zap.String("noteID", note.ID),
		zap.String("folderID", folderID))

	s.notify(api.Event{Kind: api.NoteCreated, NoteID: note.ID, FolderID: folderID})
	return note
}

// UpdateNote заменяет заголовок и текст заметки. Неизвестные идентификаторы игнорируются.
func (s *NoteStore) UpdateNote(ctx context.Context, noteID, title, content string) (entities.Note, bool) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.UpdateNote"), zap.String("noteID", noteID))

	s.mu.Lock()
	idx := s.noteIndex(noteID)
	if idx < 0 {
		s.mu.Unlock()
		log.Debug(ctx, LogNoteNotFound)
		return entities.Note{}, false
	}
	note := &s.notes[idx]
	note.Title = validText(title)
	note.Content = validText(content)
	note.UpdatedAt = s.nextUpdate(note.UpdatedAt)
	updated := *note
	s.persist(ctx, entities.NotesKey)
	s.mu.Unlock()

	log.Debug(ctx, LogNoteUpdated)
	s.notify(api.Event{Kind: api.NoteUpdated, NoteID: noteID, FolderID: updated.FolderID})
	return updated, true
}

// DeleteNote удаляет заметку. Если она была активной, активной становится
// первая оставшаяся заметка либо никакая.
func (s *NoteStore) DeleteNote(ctx context.Context, noteID string) bool {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.DeleteNote"), zap.String("noteID", noteID))

	s.mu.Lock()
	idx := s.noteIndex(noteID)
	if idx < 0 {
		s.mu.Unlock()
		log.Debug(ctx, LogNoteNotFound)
		return false
	}
	folderID := s.notes[idx].FolderID
	s.notes = slices.Delete(s.notes, idx, idx+1)
	if s.activeNoteID == noteID {
		s.activeNoteID = ""
		if len(s.notes) > 0 {
			s.activeNoteID = s.notes[0].ID
		}
	}
	s.persist(ctx, entities.NotesKey)
	s.mu.Unlock()

	log.Debug(ctx, LogNoteDeleted)
	s.notify(api.Event{Kind: api.NoteDeleted, NoteID: noteID, FolderID: folderID})
	return true
}

// ToggleFavorite переключает признак избранного и обновляет updatedAt.
func (s *NoteStore) ToggleFavorite(ctx context.Context, noteID string) (entities.Note, bool) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.ToggleFavorite"), zap.String("noteID", noteID))

	s.mu.Lock()
	idx := s.noteIndex(noteID)
	if idx < 0 {
		s.mu.Unlock()
		log.Debug(ctx, LogNoteNotFound)
		return entities.Note{}, false
	}
	note := &s.notes[idx]
	note.Favorite = !note.Favorite
	note.UpdatedAt = s.nextUpdate(note.UpdatedAt)
	updated := *note
	s.persist(ctx, entities.NotesKey)
	s.mu.Unlock()

	log.Debug(ctx, LogFavoriteToggled, zap.Bool("favorite", updated.Favorite))
	s.notify(api.Event{Kind: api.FavoriteToggled, NoteID: noteID, FolderID: updated.FolderID})
	return updated, true
}

// DuplicateNote добавляет в начало копию заметки. Активная заметка не меняется.
func (s *NoteStore) DuplicateNote(ctx context.Context, noteID string) (entities.Note, bool) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.DuplicateNote"), zap.String("noteID", noteID))

	s.mu.Lock()
	idx := s.noteIndex(noteID)
	if idx < 0 {
		s.mu.Unlock()
		log.Debug(ctx, LogNoteNotFound)
		return entities.Note{}, false
	}
	dup := s.notes[idx].Duplicate(s.ids.NewNoteID(), s.locale.CopySuffix, s.clock.Now())
	s.notes = slices.Insert(s.notes, 0, dup)
	s.persist(ctx, entities.NotesKey)
	s.mu.Unlock()

	log.Debug(ctx, LogNoteDuplicated, zap.String("copyID", dup.ID))
	s.notify(api.Event{Kind: api.NoteDuplicated, NoteID: dup.ID, FolderID: dup.FolderID})
	return dup, true
}

// SearchNotes возвращает в порядке коллекции заметки, чей заголовок или текст
// содержит query без учета регистра. Пустой запрос ничего не находит.
func (s *NoteStore) SearchNotes(query string) []entities.Note {
	result := []entities.Note{}
	if query == "" {
		return result
	}
	lower := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, note := range s.notes {
		if note.Matches(lower) {
			result = append(result, note)
		}
	}
	return result
}

// CreateFolder добавляет в конец папку с новым идентификатором.
func (s *NoteStore) CreateFolder(ctx context.Context, name string) entities.Folder {
	s.mu.Lock()
	folder := entities.Folder{ID: s.ids.NewFolderID(), Name: validText(name)}
	s.folders = append(s.folders, folder)
	s.persist(ctx, entities.FoldersKey)
	s.mu.Unlock()

	logger.Log(ctx).Debug(ctx, LogFolderCreated,
		zap.String("method", "NoteStore.CreateFolder"),
		zap.String("folderID", folder.ID))

	s.notify(api.Event{Kind: api.FolderCreated, FolderID: folder.ID})
	return folder
}

// DeleteFolder удаляет папку и переносит ее заметки в папку по умолчанию.
// Защищенные папки и неизвестные идентификаторы игнорируются.
func (s *NoteStore) DeleteFolder(ctx context.Context, folderID string) bool {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.DeleteFolder"), zap.String("folderID", folderID))

	if entities.IsProtected(folderID) {
		log.Debug(ctx, LogFolderIgnored)
		return false
	}

	s.mu.Lock()
	idx := s.folderIndex(folderID)
	if idx < 0 {
		s.mu.Unlock()
		log.Debug(ctx, LogFolderIgnored)
		return false
	}
	s.folders = slices.Delete(s.folders, idx, idx+1)

	moved := 0
	for i := range s.notes {
		if s.notes[i].FolderID == folderID {
			s.notes[i].FolderID = entities.DefaultFolderID
			moved++
		}
	}
	if s.activeFolder == folderID {
		s.activeFolder = entities.AllFolderID
	}
	s.persist(ctx, entities.FoldersKey, entities.NotesKey)
	s.mu.Unlock()

	log.Debug(ctx, LogFolderDeleted, zap.Int("movedNotes", moved))
	s.notify(api.Event{Kind: api.FolderDeleted, FolderID: folderID})
	return true
}

// SetActiveNote выбирает заметку noteID; пустой идентификатор снимает выбор.
func (s *NoteStore) SetActiveNote(noteID string) {
	s.mu.Lock()
	s.activeNoteID = noteID
	s.mu.Unlock()

	s.notify(api.Event{Kind: api.ActiveNoteChanged, NoteID: noteID})
}

// SetActiveFolder выбирает фильтр по папке.
func (s *NoteStore) SetActiveFolder(folderID string) {
	s.mu.Lock()
	s.activeFolder = folderID
	s.mu.Unlock()

	s.notify(api.Event{Kind: api.ActiveFolderChanged, FolderID: folderID})
}

// Notes возвращает копию коллекции заметок в порядке отображения.
func (s *NoteStore) Notes() []entities.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Folders возвращает копию коллекции папок, включая запись "all".
func (s *NoteStore) Folders() []entities.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.folders)
}

// UserFolders возвращает папки для боковой панели: все, кроме виртуальных разделов.
func (s *NoteStore) UserFolders() []entities.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders := make([]entities.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		if !entities.IsVirtual(f.ID) {
			folders = append(folders, f)
		}
	}
	return folders
}

// ActiveNote разрешает идентификатор активной заметки по коллекции.
func (s *NoteStore) ActiveNote() (entities.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeNoteID == "" {
		return entities.Note{}, false
	}
	idx := s.noteIndex(s.activeNoteID)
	if idx < 0 {
		return entities.Note{}, false
	}
	return s.notes[idx], true
}

// ActiveFolder возвращает идентификатор активной папки или виртуального раздела.
func (s *NoteStore) ActiveFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeFolder
}

// VisibleNotes возвращает содержимое списка заметок: результаты поиска для
// непустого запроса, иначе заметки активной папки.
func (s *NoteStore) VisibleNotes(query string) []entities.Note {
	if query != "" {
		return s.SearchNotes(query)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterByFolder(s.notes, s.activeFolder)
}

// Subscribe регистрирует fn, вызываемую после каждого изменения. Вызовы синхронные,
// в горутине, выполнившей изменение, вне блокировки хранилища.
func (s *NoteStore) Subscribe(fn func(api.Event)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	}
}

// Snapshot возвращает текущее сохраняемое состояние.
func (s *NoteStore) Snapshot() entities.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.Snapshot{
		Notes:   slices.Clone(s.notes),
		Folders: slices.Clone(s.folders),
	}
}

func (s *NoteStore) notify(event api.Event) {
	s.subsMu.Lock()
	subs := slices.Clone(s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(event)
	}
}

// persist записывает указанные коллекции. Вызывается под mu.
// Ошибки логируются и подавляются.
func (s *NoteStore) persist(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var (
			raw string
			err error
		)
		switch key {
		case entities.NotesKey:
			raw, err = entities.EncodeNotes(s.notes)
		case entities.FoldersKey:
			raw, err = entities.EncodeFolders(s.folders)
		}
		if err == nil {
			err = s.storage.Set(ctx, key, raw)
		}
		if err != nil {
			logger.Log(ctx).Warn(ctx, LogPersistFailed, zap.String("key", key), zap.Error(err))
		}
	}
}

// nextUpdate возвращает время часов, строго большее prev.
func (s *NoteStore) nextUpdate(prev entities.Timestamp) entities.Timestamp {
	now := entities.NewTimestamp(s.clock.Now())
	if !now.After(prev) {
		now = entities.NewTimestamp(prev.Add(time.Millisecond))
	}
	return now
}

func (s *NoteStore) noteIndex(noteID string) int {
	return slices.IndexFunc(s.notes, func(n entities.Note) bool { return n.ID == noteID })
}

func (s *NoteStore) folderIndex(folderID string) int {
	return slices.IndexFunc(s.folders, func(f entities.Folder) bool { return f.ID == folderID })
}

// ownsNotes сообщает, является ли folderID существующей невиртуальной папкой.
func (s *NoteStore) ownsNotes(folderID string) bool {
	return !entities.IsVirtual(folderID) && s.folderIndex(folderID) >= 0
}

// validText заменяет некорректные UTF-8 последовательности на U+FFFD так же,
// как это сделает encoding/json, чтобы состояние в памяти совпадало с сохраненным.
func validText(text string) string {
	return strings.ToValidUTF8(text, "\uFFFD")
}
