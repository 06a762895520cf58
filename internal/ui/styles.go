package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleButton = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(lipgloss.Color("#5A2C86"))

	StyleButtonDisabled = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("#111827")).
				Background(lipgloss.Color("#5E5C5D"))

	StyleButtonReady = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Foreground(lipgloss.Color("#F9FAFB")).
				Background(ColorSuccess)
)

// Button renders a labelled action in its enabled or disabled look.
func Button(label string, enabled bool) string {
	if !enabled {
		return StyleButtonDisabled.Render(label)
	}
	return StyleButton.Render(label)
}

// VerdictStyle colours a history line by its verdict suffix.
func VerdictStyle(line string) lipgloss.Style {
	switch {
	case strings.HasSuffix(line, " Not Repro"):
		return StyleSuccess
	case strings.HasSuffix(line, " Repro"):
		return StyleFailure
	default:
		return lipgloss.NewStyle()
	}
}

