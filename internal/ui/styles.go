package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/timeline"
)

var (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorFailure = lipgloss.Color("#EF4444")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorInfo    = lipgloss.Color("#3B82F6")
	ColorMuted   = lipgloss.Color("#6B7280")

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Styles are the theme-dependent styles for the whole screen. They are
// rebuilt whenever the theme changes.
type Styles struct {
	Dark bool

	Border    lipgloss.Color
	Highlight lipgloss.Color

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	Header      lipgloss.Style
	StatusBar   lipgloss.Style
	Title       lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Tooltip     lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
}

func NewStyles(theme present.ThemeState) Styles {
	opts := present.OptionsFor(theme, "")

	border := lipgloss.Color("#D1D5DB")
	highlight := lipgloss.Color("#EEF2FF")
	headerBg := lipgloss.Color("#E5E7EB")
	statusBg := lipgloss.Color("#F3F4F6")
	if opts.Dark {
		border = lipgloss.Color("#374151")
		highlight = lipgloss.Color("#1F2937")
		headerBg = lipgloss.Color("#1F2937")
		statusBg = lipgloss.Color("#111827")
	}

	tab := lipgloss.NewStyle().Padding(0, 2)
	return Styles{
		Dark:      opts.Dark,
		Border:    border,
		Highlight: highlight,

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		PaneFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary),
		Header: lipgloss.NewStyle().
			Background(headerBg).
			Foreground(lipgloss.Color(opts.Foreground)),
		StatusBar: lipgloss.NewStyle().Background(statusBg),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(opts.TitleColor)),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Foreground)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(opts.TickColor)),
		Tooltip: lipgloss.NewStyle().
			Background(lipgloss.Color(opts.TooltipBackground)).
			Foreground(lipgloss.Color("#F9FAFB")).
			Padding(0, 1),
		TabActive:   tab.Bold(true).Foreground(ColorPrimary),
		TabInactive: tab.Foreground(ColorMuted),
	}
}

// TimelineColors maps chart options onto the timeline renderer's colours.
func TimelineColors(opts present.Options) timeline.Colors {
	return timeline.Colors{
		Label: opts.LegendColor,
		Tick:  opts.TickColor,
		Grid:  opts.GridColor,
		Text:  "#FFFFFF",
	}
}

// ChartColors maps chart options onto the diagnostics renderers' colours.
func ChartColors(opts present.Options) diagnostics.Colors {
	return diagnostics.Colors{
		Title:  opts.TitleColor,
		Legend: opts.LegendColor,
		Tick:   opts.TickColor,
		Grid:   opts.GridColor,
	}
}
