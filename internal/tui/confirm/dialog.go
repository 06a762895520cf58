package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/ci-downloader/internal/ui"
)

// ResultMsg reports the user's answer for Action.
type ResultMsg struct {
	Confirmed bool
	Action    string
}

// Model is a yes/no prompt. No is preselected.
type Model struct {
	Title    string
	Message  string
	Action   string
	active   bool
	selected bool // true = yes
}

func New(title, message, action string) Model {
	return Model{
		Title:   title,
		Message: message,
		Action:  action,
		active:  true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		return m.answer(true)
	case "n", "N", "esc":
		return m.answer(false)
	case "enter":
		return m.answer(m.selected)
	case "tab", "left", "right", "h", "l":
		m.selected = !m.selected
	}
	return m, nil
}

func (m Model) answer(yes bool) (Model, tea.Cmd) {
	m.active = false
	action := m.Action
	return m, func() tea.Msg {
		return ResultMsg{Confirmed: yes, Action: action}
	}
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(50)

	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorWarning).Render(m.Title)

	yes := lipgloss.NewStyle().Padding(0, 1).Foreground(ui.ColorMuted)
	no := lipgloss.NewStyle().Padding(0, 1).Foreground(ui.ColorMuted)
	light := lipgloss.Color("#F9FAFB")
	if m.selected {
		yes = yes.Bold(true).Background(ui.ColorSuccess).Foreground(light)
	} else {
		no = no.Bold(true).Background(ui.ColorFailure).Foreground(light)
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s  %s\n\ny/n to confirm, esc to cancel",
		title, m.Message, yes.Render("Yes"), no.Render("No"))
	return style.Render(content)
}
