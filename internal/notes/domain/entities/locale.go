package entities

import "strings"

// Locale holds the user-visible strings the store itself writes into data.
type Locale struct {
	Code             string
	UntitledNote     string
	CopySuffix       string
	AllNotesFolder   string
	PersonalFolder   string
	FavoritesSection string
}

// Поддерживаемые локали.
var (
	English = Locale{
		Code:             "en",
		UntitledNote:     "Untitled Note",
		CopySuffix:       " (copy)",
		AllNotesFolder:   "All notes",
		PersonalFolder:   "Personal",
		FavoritesSection: "Favorites",
	}
	Polish = Locale{
		Code:             "pl",
		UntitledNote:     "Nowa notatka",
		CopySuffix:       " (kopia)",
		AllNotesFolder:   "Wszystkie notatki",
		PersonalFolder:   "Osobiste",
		FavoritesSection: "Ulubione",
	}
)

// LocaleByCode returns the locale for code, falling back to English.
func LocaleByCode(code string) Locale {
	if strings.EqualFold(code, Polish.Code) {
		return Polish
	}
	return English
}

// DefaultFolders returns the seed folder list for the locale.
func (l Locale) DefaultFolders() []Folder {
	return []Folder{
		{ID: AllFolderID, Name: l.AllNotesFolder},
		{ID: DefaultFolderID, Name: l.PersonalFolder},
	}
}
