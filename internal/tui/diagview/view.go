package diagview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/tui/charts"
	"github.com/altinukshini/schedviz/internal/ui"
)

// Model is the scrollable search diagnostics page: metrics, the two charts
// and the solution path.
type Model struct {
	diag        *diagnostics.Diagnostics
	heuristic   *charts.Chart
	exploration *charts.Chart
	styles      ui.Styles
	viewport    viewport.Model
	width       int
	height      int
	ready       bool
}

func New(styles ui.Styles) Model {
	return Model{styles: styles}
}

func (m *Model) SetStyles(styles ui.Styles) {
	m.styles = styles
	m.refresh()
}

// SetDiagnostics shows freshly bound diagnostics with their two charts.
func (m *Model) SetDiagnostics(d diagnostics.Diagnostics, heuristic, exploration *charts.Chart) {
	m.diag = &d
	m.heuristic = heuristic
	m.exploration = exploration
	m.refresh()
}

func (m Model) Diagnostics() *diagnostics.Diagnostics {
	return m.diag
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		if !m.ready {
			m.viewport = viewport.New(wsm.Width, wsm.Height)
			m.ready = true
		} else {
			m.viewport.Width = wsm.Width
			m.viewport.Height = wsm.Height
		}
		m.viewport.SetContent(m.render())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) render() string {
	muted := m.styles.Muted
	if m.diag == nil {
		return muted.Render("  No search diagnostics yet. Submit a schedule first.")
	}
	d := m.diag

	var b strings.Builder
	if d.Absent {
		b.WriteString(muted.Render("  "+d.Message) + "\n\n")
	} else {
		b.WriteString(diagnostics.RenderSummary(d.Summary, ui.ChartColors(m.chartOptions())) + "\n\n")
	}

	b.WriteString(m.renderChart(m.heuristic) + "\n\n")
	b.WriteString(m.renderChart(m.exploration) + "\n\n")
	b.WriteString(diagnostics.RenderPath(d.Path, ui.ChartColors(m.chartOptions())))
	return b.String()
}

func (m Model) renderChart(c *charts.Chart) string {
	if c == nil {
		return m.styles.Muted.Render("  Chart unavailable")
	}
	out, err := c.View(max(20, m.width-2), 0, -1)
	if err != nil {
		return m.styles.Muted.Render("  " + err.Error())
	}
	return out
}

// chartOptions borrows the charts' theme colours for the text sections so
// the whole page restyles together.
func (m Model) chartOptions() present.Options {
	for _, c := range []*charts.Chart{m.heuristic, m.exploration} {
		if c != nil && !c.Destroyed() {
			return c.Options()
		}
	}
	theme := present.Light
	if m.styles.Dark {
		theme = present.Dark
	}
	return present.OptionsFor(present.NewThemeState(theme), "")
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	return m.viewport.View()
}
