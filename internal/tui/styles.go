package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waketrack/internal/models"
)

var (
	workStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Padding(0, 2).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

func phaseLabel(t models.SessionType) string {
	switch t {
	case models.SessionShortBreak:
		return breakStyle.Render("☕ Short Break")
	case models.SessionLongBreak:
		return breakStyle.Render("🌴 Long Break")
	default:
		return workStyle.Render("🍅 Focus")
	}
}
