package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"localnotes/internal/notes/domain/entities"
)

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#6C6C6C")

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(accent)
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(accent)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent)
	mutedStyle       = lipgloss.NewStyle().Foreground(muted)
	favoriteMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5C542")).Render("★")
)

const helpBrowse = "n new · d delete · f favorite · c copy · / search · N folder · X del folder · tab pane · enter edit · q quit"

// View implements tea.Model.
func (m Model) View() string {
	bodyHeight := max(m.height-chromeHeight, 5)

	folders := m.stylePane(paneFolders, sidebarWidth, bodyHeight).Render(m.viewFolders())
	list := m.stylePane(paneNotes, listWidth, bodyHeight).Render(m.viewNotes(listWidth - 4))
	editor := paneStyle.Height(bodyHeight).Render(m.viewEditor())

	body := lipgloss.JoinHorizontal(lipgloss.Top, folders, list, editor)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewStatus())
}

func (m Model) stylePane(p pane, width, height int) lipgloss.Style {
	style := paneStyle
	if m.mode == modeBrowse && m.focus == p {
		style = focusedPaneStyle
	}
	return style.Width(width).Height(height)
}

func (m Model) viewFolders() string {
	var b strings.Builder
	active := m.store.ActiveFolder()

	for _, folder := range m.sidebar() {
		line := folder.Name
		if folder.ID == active {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if m.mode == modeNewFolder {
		b.WriteString(m.folderInput.View())
	}
	return b.String()
}

func (m Model) viewNotes(width int) string {
	var b strings.Builder
	notes := m.store.VisibleNotes(m.query)

	header := fmt.Sprintf("%d", len(notes))
	if m.query != "" {
		header = fmt.Sprintf("%d · %q", len(notes), m.query)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteByte('\n')
	if m.mode == modeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteByte('\n')
	}

	activeID := ""
	if active, ok := m.store.ActiveNote(); ok {
		activeID = active.ID
	}

	for _, note := range notes {
		line := noteLabel(note, width)
		if note.ID == activeID {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(mutedStyle.Render(note.UpdatedAt.Format("2006-01-02 15:04")))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) viewEditor() string {
	if m.mode == modeEdit {
		return m.titleInput.View() + "\n\n" + m.contentArea.View()
	}

	note, ok := m.store.ActiveNote()
	if !ok {
		return mutedStyle.Render("no note selected")
	}
	return headerStyle.Render(note.Title) + "\n\n" + note.Content
}

func (m Model) viewStatus() string {
	switch m.mode {
	case modeEdit:
		return mutedStyle.Render("tab title/content · esc save")
	case modeSearch:
		return mutedStyle.Render("enter keep results · esc clear")
	case modeNewFolder:
		return mutedStyle.Render("enter create · esc cancel")
	default:
		return mutedStyle.Render(helpBrowse)
	}
}

func noteLabel(note entities.Note, width int) string {
	if note.Favorite {
		return favoriteMark + " " + truncate(note.Title, width-2)
	}
	return truncate(note.Title, width)
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
