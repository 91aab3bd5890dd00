package app

import "localnotes/internal/notes/domain/entities"

// FilterByFolder applies the list filtering policy for folderID:
// "all" keeps every note, "favorites" keeps favorites, any other id keeps the
// notes that belong to that folder exactly.
func FilterByFolder(notes []entities.Note, folderID string) []entities.Note {
	result := make([]entities.Note, 0, len(notes))
	for _, note := range notes {
		switch folderID {
		case entities.AllFolderID:
			result = append(result, note)
		case entities.FavoritesFolderID:
			if note.Favorite {
				result = append(result, note)
			}
		default:
			if note.FolderID == folderID {
				result = append(result, note)
			}
		}
	}
	return result
}
