package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waketrack/internal/models"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	productiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unproductiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	neutralStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// CategoryStyle colours text by activity category.
func CategoryStyle(c models.Category) lipgloss.Style {
	switch c {
	case models.CategoryProductive:
		return productiveStyle
	case models.CategoryUnproductive:
		return unproductiveStyle
	default:
		return neutralStyle
	}
}

// Bar renders a fixed-width bar for a percentage.
func Bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	out := make([]rune, width)
	for i := range out {
		if i < filled {
			out[i] = '█'
		} else {
			out[i] = '░'
		}
	}
	return string(out)
}
