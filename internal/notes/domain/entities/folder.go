package entities

// Зарезервированные идентификаторы папок.
const (
	// AllFolderID - виртуальный раздел "все заметки". Хранится в списке папок, но не удаляется.
	AllFolderID = "all"
	// FavoritesFolderID - виртуальный раздел "избранное". Не хранится.
	FavoritesFolderID = "favorites"
	// DefaultFolderID - папка по умолчанию, куда переносятся заметки удаленных папок.
	DefaultFolderID = "folder-1"
)

// Folder представляет собой папку для группировки заметок.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsVirtual reports whether id names a view rather than a folder that can own notes.
func IsVirtual(id string) bool {
	return id == AllFolderID || id == FavoritesFolderID
}

// IsProtected reports whether the folder with id can never be deleted.
func IsProtected(id string) bool {
	return IsVirtual(id) || id == DefaultFolderID
}
