package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/model"
)

var (
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Red      = lipgloss.Color("#f38ba8")
	Teal     = lipgloss.Color("#94e2d5")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")

	App = lipgloss.NewStyle().
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Padding(0, 1)

	Tab       = lipgloss.NewStyle().Foreground(Subtext0).Padding(0, 1)
	Clock     = lipgloss.NewStyle().Bold(true)
	Title     = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted     = lipgloss.NewStyle().Foreground(Subtext0)
	Hot       = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Reached   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	BarFilled = lipgloss.NewStyle().Foreground(Text)
	BarEmpty  = lipgloss.NewStyle().Foreground(Surface1)
)

// Accent is the highlight colour of mode.
func Accent(mode model.Mode) lipgloss.Color {
	switch mode {
	case model.ModeShortBreak:
		return Teal
	case model.ModeLongBreak:
		return Sapphire
	default:
		return Red
	}
}
