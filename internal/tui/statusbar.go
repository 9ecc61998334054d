package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/schedviz/internal/ui"
)

func RenderStatusBar(styles ui.Styles, status, hints string, width int) string {
	left := styles.Muted.Render("  " + status)
	help := ui.StyleMuted.Render(hints + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return styles.StatusBar.
		Width(width).
		Render(left + padding + help)
}
