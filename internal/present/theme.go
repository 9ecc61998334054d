// Package present owns the theme state and the lifecycle of the three chart
// slots, delegating actual drawing to a Backend.
package present

// PreferenceKey is the key the theme is persisted under.
const PreferenceKey = "theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme treats anything other than "dark" as light.
func ParseTheme(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// ThemeState is an immutable theme value. Transitions return a new value.
type ThemeState struct {
	theme Theme
}

func NewThemeState(t Theme) ThemeState {
	return ThemeState{theme: ParseTheme(string(t))}
}

func (s ThemeState) Theme() Theme {
	if s.theme == "" {
		return Light
	}
	return s.theme
}

func (s ThemeState) IsDark() bool {
	return s.Theme() == Dark
}

func (s ThemeState) Toggle() ThemeState {
	if s.IsDark() {
		return ThemeState{theme: Light}
	}
	return ThemeState{theme: Dark}
}

// Options are the theme-dependent parameters handed to a chart backend.
type Options struct {
	Title             string
	Dark              bool
	TitleColor        string
	LegendColor       string
	TickColor         string
	GridColor         string
	TooltipBackground string
	Background        string
	Foreground        string
}

// OptionsFor is a pure function of theme and title.
func OptionsFor(s ThemeState, title string) Options {
	if s.IsDark() {
		return Options{
			Title:             title,
			Dark:              true,
			TitleColor:        "#E0E0E0",
			LegendColor:       "#B0B0B0",
			TickColor:         "#B0B0B0",
			GridColor:         "#3A3F47",
			TooltipBackground: "#2C3440",
			Background:        "#1E2329",
			Foreground:        "#F9FAFB",
		}
	}
	return Options{
		Title:             title,
		TitleColor:        "#333333",
		LegendColor:       "#666666",
		TickColor:         "#666666",
		GridColor:         "#E6E6E6",
		TooltipBackground: "#4D4D4D",
		Background:        "#FFFFFF",
		Foreground:        "#1F2937",
	}
}
