package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"localnotes/internal/notes/domain/entities"
	"localnotes/internal/notes/ports/repositories"
	"localnotes/pkg/logger"
)

// Константы для загрузки снимка.
const (
	LogSnapshotLoaded = "snapshot loaded"
	LogSeedUsed       = "no persisted value, using default seed"

	ErrReadSnapshot = "failed to read snapshot"
)

// LoadSnapshot восстанавливает обе коллекции из хранилища. Отсутствующий ключ или
// значение null заменяются начальными данными для locale; нераспознаваемое значение
// является ошибкой, чтобы начальные данные не затирали данные пользователя.
func LoadSnapshot(ctx context.Context, storage repositories.SnapshotStorage, locale entities.Locale) (entities.Snapshot, error) {
	log := logger.Log(ctx).With(zap.String("method", "LoadSnapshot"))
	snapshot := entities.DefaultSnapshot(locale)

	rawNotes, found, err := storage.Get(ctx, entities.NotesKey)
	if err != nil {
		return entities.Snapshot{}, fmt.Errorf("%s: %s: %w", ErrReadSnapshot, entities.NotesKey, err)
	}
	if found {
		notes, err := entities.DecodeNotes(rawNotes)
		if err != nil {
			return entities.Snapshot{}, err
		}
		found = notes != nil
		if found {
			snapshot.Notes = notes
		}
	}
	if !found {
		log.Debug(ctx, LogSeedUsed, zap.String("key", entities.NotesKey))
	}

	rawFolders, found, err := storage.Get(ctx, entities.FoldersKey)
	if err != nil {
		return entities.Snapshot{}, fmt.Errorf("%s: %s: %w", ErrReadSnapshot, entities.FoldersKey, err)
	}
	if found {
		folders, err := entities.DecodeFolders(rawFolders)
		if err != nil {
			return entities.Snapshot{}, err
		}
		found = folders != nil
		if found {
			snapshot.Folders = folders
		}
	}
	if !found {
		log.Debug(ctx, LogSeedUsed, zap.String("key", entities.FoldersKey))
	}

	log.Info(ctx, LogSnapshotLoaded,
		zap.Int("notes", len(snapshot.Notes)),
		zap.Int("folders", len(snapshot.Folders)))

	return snapshot, nil
}

// SaveSnapshot записывает обе коллекции. Используется для явного сброса, например при завершении.
func SaveSnapshot(ctx context.Context, storage repositories.SnapshotStorage, snapshot entities.Snapshot) error {
	rawNotes, err := entities.EncodeNotes(snapshot.Notes)
	if err != nil {
		return err
	}
	rawFolders, err := entities.EncodeFolders(snapshot.Folders)
	if err != nil {
		return err
	}

	if err := storage.Set(ctx, entities.NotesKey, rawNotes); err != nil {
		return fmt.Errorf("save %s: %w", entities.NotesKey, err)
	}
	if err := storage.Set(ctx, entities.FoldersKey, rawFolders); err != nil {
		return fmt.Errorf("save %s: %w", entities.FoldersKey, err)
	}
	return nil
}
