package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/schedviz/internal/ui"
)

func RenderHeader(styles ui.Styles, solverURL, algorithm string, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf(" schedviz | %s", solverURL))

	theme := "light"
	if styles.Dark {
		theme = "dark"
	}
	right := lipgloss.NewStyle().Foreground(ui.ColorInfo).Render(algorithm) +
		ui.StyleMuted.Render(fmt.Sprintf("  theme: %s ", theme))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return styles.Header.
		Width(width).
		Render(left + padding + right)
}
