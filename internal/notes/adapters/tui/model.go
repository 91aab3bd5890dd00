// Package tui is the terminal front end of the note store: a folder sidebar,
// the note list and an editor. It owns no note state; everything is read back
// from the store on render.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"localnotes/internal/notes/app"
	"localnotes/internal/notes/domain/entities"
	"localnotes/internal/notes/ports/api"
)

type pane int

const (
	paneFolders pane = iota
	paneNotes
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeSearch
	modeNewFolder
)

// storeChangedMsg is delivered after each store notification.
type storeChangedMsg struct {
	event api.Event
}

// Model is the bubbletea model of the application.
type Model struct {
	ctx   context.Context
	store api.NoteStore

	changes     chan api.Event
	unsubscribe func()
	lastEvent   api.Event

	width  int
	height int

	focus pane
	mode  mode

	editingID    string
	savedTitle   string
	savedContent string
	titleInput   textinput.Model
	contentArea  textarea.Model
	searchInput  textinput.Model
	folderInput  textinput.Model
	query        string
	editingTitle bool
}

// New builds the model around the store carried by ctx.
// It panics if ctx holds no store.
func New(ctx context.Context) Model {
	store := app.MustFromContext(ctx)

	changes := make(chan api.Event, 1)
	unsubscribe := store.Subscribe(func(e api.Event) {
		// the UI only needs to know that something changed; drop if a wakeup is pending
		select {
		case changes <- e:
		default:
		}
	})

	title := textinput.New()
	title.Prompt = ""
	title.CharLimit = 200

	content := textarea.New()
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.Prompt = ""
	content.Blur()

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	folder := textinput.New()
	folder.Prompt = "+ "
	folder.Placeholder = "folder name"

	return Model{
		ctx:         ctx,
		store:       store,
		changes:     changes,
		unsubscribe: unsubscribe,
		focus:       paneNotes,
		titleInput:  title,
		contentArea: content,
		searchInput: search,
		folderInput: folder,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context) error {
	m := New(ctx)
	defer m.unsubscribe()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func waitForChange(changes <-chan api.Event) tea.Cmd {
	return func() tea.Msg {
		return storeChangedMsg{event: <-changes}
	}
}

// sidebar is the folder pane content: the two virtual views followed by user folders.
func (m Model) sidebar() []entities.Folder {
	locale := m.store.Locale()
	folders := []entities.Folder{
		{ID: entities.AllFolderID, Name: locale.AllNotesFolder},
		{ID: entities.FavoritesFolderID, Name: locale.FavoritesSection},
	}
	return append(folders, m.store.UserFolders()...)
}
