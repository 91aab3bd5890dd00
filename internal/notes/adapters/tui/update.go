package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"localnotes/internal/notes/domain/entities"
	"localnotes/pkg/logger"
)

const (
	sidebarWidth = 24
	listWidth    = 36
	chromeHeight = 4
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case storeChangedMsg:
		m.lastEvent = msg.event
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeNewFolder:
			return m.updateNewFolder(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.focus == paneFolders {
			m.focus = paneNotes
		} else {
			m.focus = paneFolders
		}
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "n":
		note := m.store.CreateNote(m.ctx, m.store.ActiveFolder())
		m.query = ""
		m.searchInput.SetValue("")
		return m.startEdit(note)
	case "d":
		if note, ok := m.store.ActiveNote(); ok {
			m.store.DeleteNote(m.ctx, note.ID)
		}
	case "f":
		if note, ok := m.store.ActiveNote(); ok {
			m.store.ToggleFavorite(m.ctx, note.ID)
		}
	case "c":
		if note, ok := m.store.ActiveNote(); ok {
			m.store.DuplicateNote(m.ctx, note.ID)
		}
	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd
	case "N":
		m.mode = modeNewFolder
		m.folderInput.SetValue("")
		cmd := m.folderInput.Focus()
		return m, cmd
	case "X":
		m.store.DeleteFolder(m.ctx, m.store.ActiveFolder())
	case "enter":
		if note, ok := m.store.ActiveNote(); ok {
			return m.startEdit(note)
		}
	case "esc":
		m.query = ""
		m.searchInput.SetValue("")
	}
	return m, nil
}

// move shifts the selection of the focused pane by delta, clamped to its bounds.
func (m *Model) move(delta int) {
	if m.focus == paneFolders {
		folders := m.sidebar()
		idx := slices.IndexFunc(folders, func(f entities.Folder) bool { return f.ID == m.store.ActiveFolder() })
		m.store.SetActiveFolder(folders[clamp(idx+delta, 0, len(folders)-1)].ID)
		return
	}

	notes := m.store.VisibleNotes(m.query)
	if len(notes) == 0 {
		return
	}
	idx := -1
	if active, ok := m.store.ActiveNote(); ok {
		idx = slices.IndexFunc(notes, func(n entities.Note) bool { return n.ID == active.ID })
	}
	if idx < 0 {
		m.store.SetActiveNote(notes[0].ID)
		return
	}
	m.store.SetActiveNote(notes[clamp(idx+delta, 0, len(notes)-1)].ID)
}

func (m Model) startEdit(note entities.Note) (tea.Model, tea.Cmd) {
	m.mode = modeEdit
	m.editingID = note.ID
	m.editingTitle = true
	m.savedTitle = note.Title
	m.savedContent = note.Content
	m.titleInput.SetValue(note.Title)
	m.titleInput.CursorEnd()
	m.contentArea.SetValue(note.Content)
	m.contentArea.Blur()
	cmd := m.titleInput.Focus()
	return m, cmd
}

// save writes the editor buffers through the store when they differ from
// what was last saved. Called after every edit so the store never lags the editor.
func (m *Model) save() {
	title, content := m.titleInput.Value(), m.contentArea.Value()
	if title == m.savedTitle && content == m.savedContent {
		return
	}
	if _, ok := m.store.UpdateNote(m.ctx, m.editingID, title, content); !ok {
		logger.Log(m.ctx).Warn(m.ctx, "edited note disappeared before save", zap.String("noteID", m.editingID))
	}
	m.savedTitle, m.savedContent = title, content
}

// commit saves the editor buffers and leaves edit mode.
func (m *Model) commit() {
	m.save()
	m.mode = modeBrowse
	m.editingID = ""
	m.titleInput.Blur()
	m.contentArea.Blur()
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commit()
		return m, nil
	case "ctrl+c":
		m.commit()
		return m, tea.Quit
	case "tab":
		m.editingTitle = !m.editingTitle
		if m.editingTitle {
			m.contentArea.Blur()
			cmd := m.titleInput.Focus()
			return m, cmd
		}
		m.titleInput.Blur()
		cmd := m.contentArea.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.editingTitle {
		if msg.Type == tea.KeyEnter {
			m.editingTitle = false
			m.titleInput.Blur()
			cmd = m.contentArea.Focus()
			return m, cmd
		}
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.contentArea, cmd = m.contentArea.Update(msg)
	}
	m.save()
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.query = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.mode = modeBrowse
		return m, nil
	case "enter":
		m.searchInput.Blur()
		m.mode = modeBrowse
		m.focus = paneNotes
		if notes := m.store.VisibleNotes(m.query); len(notes) > 0 {
			m.store.SetActiveNote(notes[0].ID)
		}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	return m, cmd
}

func (m Model) updateNewFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.folderInput.Blur()
		m.mode = modeBrowse
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.folderInput.Value())
		m.folderInput.Blur()
		m.mode = modeBrowse
		if name != "" {
			folder := m.store.CreateFolder(m.ctx, name)
			m.store.SetActiveFolder(folder.ID)
			m.focus = paneFolders
		}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.folderInput, cmd = m.folderInput.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	editorWidth := max(m.width-sidebarWidth-listWidth-6, 20)
	m.titleInput.Width = editorWidth
	m.contentArea.SetWidth(editorWidth)
	m.contentArea.SetHeight(max(m.height-chromeHeight-4, 3))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
