package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/ci-downloader/internal/model"
	"github.com/altinukshini/ci-downloader/internal/ui"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// SubmitMsg is emitted when enter is pressed in the commit field.
type SubmitMsg struct {
	Query model.SearchQuery
}

// ---------------------------------------------------------------------------
// Fields
// ---------------------------------------------------------------------------

type field int

const (
	fieldType field = iota
	fieldDevice
	fieldBrand
	fieldCommit
	fieldCount
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the lookup form: device type, device, TV brand and commit hash.
type Model struct {
	focused    field
	deviceType model.DeviceType
	brands     []string
	brandIdx   int // -1 = any brand
	device     textinput.Model
	commit     textinput.Model
	width      int
}

func New(devices, brands []string) Model {
	device := textinput.New()
	device.Placeholder = "e.g. austin"
	device.CharLimit = 64
	device.Width = 24
	device.ShowSuggestions = true
	device.SetSuggestions(devices)

	commit := textinput.New()
	commit.Placeholder = "commit SHA"
	commit.CharLimit = 128
	commit.Width = 44

	return Model{
		focused:    fieldCommit,
		deviceType: model.DeviceSTB,
		brands:     brands,
		brandIdx:   -1,
		device:     device,
		commit:     commit,
	}
}

// Editing reports whether a text field owns the keyboard.
func (m Model) Editing() bool {
	return m.device.Focused() || m.commit.Focused()
}

func (m Model) DeviceType() model.DeviceType { return m.deviceType }

func (m Model) Commit() string { return strings.TrimSpace(m.commit.Value()) }

// Brand returns the selected TV brand, or "" for any brand.
func (m Model) Brand() string {
	if m.brandIdx < 0 || m.brandIdx >= len(m.brands) {
		return ""
	}
	return m.brands[m.brandIdx]
}

// Query builds the search query. The brand filter only applies in TV mode.
func (m Model) Query() model.SearchQuery {
	q := model.SearchQuery{
		Device:     strings.TrimSpace(m.device.Value()),
		CommitHash: m.Commit(),
	}
	if m.deviceType == model.DeviceTV {
		q.BrandFilter = m.Brand()
	}
	return q
}

func (m *Model) SetCommit(s string) {
	m.commit.SetValue(strings.TrimSpace(s))
	m.commit.CursorEnd()
}

func (m *Model) ClearCommit() {
	m.commit.SetValue("")
}

func (m *Model) SetWidth(w int) { m.width = w }

// FocusCommit moves to the commit field and starts editing it.
func (m *Model) FocusCommit() tea.Cmd {
	m.blurTextInputs()
	m.focused = fieldCommit
	return m.commit.Focus()
}

func (m Model) Init() tea.Cmd { return nil }

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	if m.Editing() {
		switch keyMsg.String() {
		case "esc":
			m.blurTextInputs()
			return m, nil
		case "up", "shift+tab":
			m.blurTextInputs()
			m.moveFocus(-1)
			return m, m.focusCurrentTextInput()
		case "down":
			m.blurTextInputs()
			m.moveFocus(1)
			return m, m.focusCurrentTextInput()
		case "tab":
			if m.focused == fieldDevice && m.hasPendingSuggestion() {
				return m.updateInputs(msg)
			}
			m.blurTextInputs()
			m.moveFocus(1)
			return m, m.focusCurrentTextInput()
		case "enter":
			if m.focused == fieldCommit {
				m.blurTextInputs()
				query := m.Query()
				return m, func() tea.Msg { return SubmitMsg{Query: query} }
			}
			m.blurTextInputs()
			m.moveFocus(1)
			return m, m.focusCurrentTextInput()
		}
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "j", "down", "tab":
		m.moveFocus(1)
	case "k", "up", "shift+tab":
		m.moveFocus(-1)
	case "enter", "i", " ":
		switch m.focused {
		case fieldType:
			m.toggleType()
		case fieldBrand:
			m.brandIdx = cycleForward(m.brandIdx, len(m.brands))
		default:
			return m, m.focusCurrentTextInput()
		}
	case "right", "l":
		switch m.focused {
		case fieldType:
			m.toggleType()
		case fieldBrand:
			m.brandIdx = cycleForward(m.brandIdx, len(m.brands))
		}
	case "left":
		switch m.focused {
		case fieldType:
			m.toggleType()
		case fieldBrand:
			m.brandIdx = cycleBackward(m.brandIdx, len(m.brands))
		}
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.device, cmd = m.device.Update(msg)
	cmds = append(cmds, cmd)
	m.commit, cmd = m.commit.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() string {
	labelStyle := lipgloss.NewStyle().Width(14).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(14).Bold(true).Foreground(ui.ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true)

	rows := make([]string, 0, int(fieldCount))
	for f := field(0); f < fieldCount; f++ {
		ls := labelStyle
		if f == m.focused {
			ls = focusedLabelStyle
		}

		var label, value string
		switch f {
		case fieldType:
			label = "Device type:"
			stb, tv := dimStyle.Render("STB"), dimStyle.Render("TV")
			if m.deviceType == model.DeviceTV {
				tv = valueStyle.Bold(true).Render("(*) TV")
				stb = dimStyle.Render("( ) STB")
			} else {
				stb = valueStyle.Bold(true).Render("(*) STB")
				tv = dimStyle.Render("( ) TV")
			}
			value = stb + "  " + tv
		case fieldDevice:
			label = "Device:"
			value = m.device.View()
		case fieldBrand:
			label = "TV brand:"
			switch {
			case m.deviceType != model.DeviceTV:
				value = dimStyle.Render("n/a (STB)")
			case m.Brand() == "":
				value = dimStyle.Render("Any brand")
			default:
				value = valueStyle.Render(m.Brand())
			}
		case fieldCommit:
			label = "Commit:"
			value = m.commit.View()
		}

		cursor := "  "
		if f == m.focused {
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(label), value))
	}
	return strings.Join(rows, "\n")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (m *Model) toggleType() {
	if m.deviceType == model.DeviceTV {
		m.deviceType = model.DeviceSTB
	} else {
		m.deviceType = model.DeviceTV
	}
}

// moveFocus steps through the fields, skipping the brand picker outside TV
// mode.
func (m *Model) moveFocus(delta int) {
	next := int(m.focused)
	for {
		next += delta
		if next < 0 {
			next = int(fieldCount) - 1
		}
		if next >= int(fieldCount) {
			next = 0
		}
		if field(next) != fieldBrand || m.deviceType == model.DeviceTV {
			break
		}
	}
	m.focused = field(next)
}

func (m Model) hasPendingSuggestion() bool {
	s := m.device.CurrentSuggestion()
	return s != "" && s != m.device.Value()
}

func (m *Model) blurTextInputs() {
	m.device.Blur()
	m.commit.Blur()
}

func (m *Model) focusCurrentTextInput() tea.Cmd {
	switch m.focused {
	case fieldDevice:
		return m.device.Focus()
	case fieldCommit:
		return m.commit.Focus()
	}
	return nil
}

func cycleForward(idx, n int) int {
	if n == 0 {
		return -1
	}
	idx++
	if idx >= n {
		return -1
	}
	return idx
}

func cycleBackward(idx, n int) int {
	if n == 0 {
		return -1
	}
	idx--
	if idx < -1 {
		return n - 1
	}
	return idx
}
