package historyview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/ci-downloader/internal/search"
	"github.com/altinukshini/ci-downloader/internal/ui"
)

// Model shows the history file with in-pane search.
type Model struct {
	viewport viewport.Model
	lines    []string
	path     string
	ready    bool
	loading  bool

	searchInput textinput.Model
	searching   bool
	searchQuery string
	matchLines  []int // 0-based
	matchIndex  int
}

func New(path string) Model {
	ti := textinput.New()
	ti.Placeholder = "Search history..."
	ti.CharLimit = 128
	return Model{path: path, searchInput: ti}
}

func (m *Model) SetLoading() { m.loading = true }

// SetLines replaces the content and scrolls to the newest entry.
func (m *Model) SetLines(lines []string) {
	m.lines = lines
	m.loading = false
	m.searchQuery = ""
	m.matchLines = nil
	m.matchIndex = 0
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoBottom()
	}
}

func (m Model) Len() int { return len(m.lines) }

func (m Model) IsSearching() bool { return m.searching }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searchQuery = m.searchInput.Value()
				m.findMatches()
				m.viewport.SetContent(m.render())
				if len(m.matchLines) > 0 {
					m.viewport.SetYOffset(m.matchLines[0])
				}
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.searching = true
			m.searchInput.SetValue("")
			return m, m.searchInput.Focus()
		case "n":
			m.stepMatch(1)
			return m, nil
		case "N":
			m.stepMatch(-1)
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		h := msg.Height - 2
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
			m.viewport.SetContent(m.render())
			m.viewport.GotoBottom()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) stepMatch(delta int) {
	if len(m.matchLines) == 0 {
		return
	}
	m.matchIndex = (m.matchIndex + delta + len(m.matchLines)) % len(m.matchLines)
	m.viewport.SetContent(m.render())
	m.viewport.SetYOffset(m.matchLines[m.matchIndex])
}

func (m *Model) findMatches() {
	m.matchLines = nil
	m.matchIndex = 0
	if m.searchQuery == "" {
		return
	}
	m.matchLines = search.Lines(m.lines, search.Parse(m.searchQuery))
}

// render colours each line by verdict and highlights search matches.
func (m Model) render() string {
	if len(m.lines) == 0 {
		return ui.StyleMuted.Render("  No results recorded yet.")
	}
	matchSet := make(map[int]bool, len(m.matchLines))
	for _, idx := range m.matchLines {
		matchSet[idx] = true
	}
	current := -1
	if m.matchIndex < len(m.matchLines) {
		current = m.matchLines[m.matchIndex]
	}
	highlight := lipgloss.NewStyle().Background(ui.ColorBorder)
	selected := lipgloss.NewStyle().Background(lipgloss.Color("#92400E")).Bold(true)

	out := make([]string, len(m.lines))
	for i, line := range m.lines {
		text := fmt.Sprintf("%4d  %s", i+1, line)
		switch {
		case i == current:
			out[i] = selected.Render(text)
		case matchSet[i]:
			out[i] = highlight.Render(text)
		default:
			out[i] = ui.VerdictStyle(line).Render(text)
		}
	}
	return strings.Join(out, "\n")
}

func (m Model) View() string {
	if m.loading {
		return "\n  Loading history..."
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).
		Render(fmt.Sprintf(" History: %s (%d)", m.path, len(m.lines)))
	if m.searchQuery != "" {
		title += ui.StyleMuted.Render(fmt.Sprintf("  /%s [%d matches]", m.searchQuery, len(m.matchLines)))
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	if m.searching {
		b.WriteString(" " + m.searchInput.View() + "\n")
	}
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.render())
	}
	return b.String()
}
