package timelineview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/schedviz/internal/timeline"
	"github.com/altinukshini/schedviz/internal/tui/charts"
	"github.com/altinukshini/schedviz/internal/ui"
)

const scrollStep = 10

// Model draws the live timeline chart with a movable job selection whose
// tooltip is shown above the chart.
type Model struct {
	chart    *charts.Chart
	cleared  bool
	selected int
	xOffset  int
	styles   ui.Styles
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func New(styles ui.Styles) Model {
	return Model{styles: styles, selected: -1}
}

func (m *Model) SetStyles(styles ui.Styles) {
	m.styles = styles
	m.refresh()
}

// SetChart switches to a newly created chart and resets selection and
// scrolling.
func (m *Model) SetChart(c *charts.Chart) {
	m.chart = c
	m.cleared = false
	m.selected = -1
	m.xOffset = 0
	m.refresh()
}

// Clear hides the chart after a failed request. The chart itself stays live
// and comes back with the next SetChart.
func (m *Model) Clear() {
	m.cleared = true
	m.refresh()
}

func (m Model) Selected() (timeline.Block, bool) {
	blocks := m.blocks()
	if m.selected < 0 || m.selected >= len(blocks) {
		return timeline.Block{}, false
	}
	return blocks[m.selected], true
}

func (m Model) XOffset() int {
	return m.xOffset
}

// chartWidth leaves room for the left margin.
func (m Model) chartWidth() int {
	return max(20, m.width-2)
}

func (m Model) layout() (timeline.Layout, bool) {
	if m.chart == nil || m.cleared || m.chart.Destroyed() {
		return timeline.Layout{}, false
	}
	return m.chart.Spec().Timeline, true
}

func (m Model) blocks() []timeline.Block {
	l, ok := m.layout()
	if !ok {
		return nil
	}
	return l.Blocks()
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve two lines for the tooltip.
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-2))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-2)
		}
		if l, ok := m.layout(); ok {
			m.xOffset = min(m.xOffset, l.MaxXOffset(m.chartWidth()))
		}
		m.viewport.SetContent(m.render())

	case tea.KeyMsg:
		l, ok := m.layout()
		if !ok {
			break
		}
		n := len(l.Blocks())
		switch {
		case key.Matches(msg, ui.Keys.NextBlock) && n > 0:
			m.selected = (m.selected + 1) % n
			m.scrollToSelected(l)
		case key.Matches(msg, ui.Keys.PrevBlock) && n > 0:
			if m.selected <= 0 {
				m.selected = n - 1
			} else {
				m.selected--
			}
			m.scrollToSelected(l)
		case key.Matches(msg, ui.Keys.ScrollLeft):
			m.xOffset = max(0, m.xOffset-scrollStep)
		case key.Matches(msg, ui.Keys.ScrollRight):
			m.xOffset = min(l.MaxXOffset(m.chartWidth()), m.xOffset+scrollStep)
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// scrollToSelected moves the visible window so the selected block's first
// column is on screen.
func (m *Model) scrollToSelected(l timeline.Layout) {
	blocks := l.Blocks()
	if m.selected < 0 || m.selected >= len(blocks) {
		return
	}
	start, end := timeline.ColumnSpan(blocks[m.selected])
	visible := l.TrackWidth(m.chartWidth())
	if start < m.xOffset {
		m.xOffset = start
	} else if end > m.xOffset+visible {
		m.xOffset = min(l.MaxXOffset(m.chartWidth()), max(0, end-visible))
	}
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	return m.tooltip() + "\n\n" + m.viewport.View()
}

func (m Model) tooltip() string {
	if blk, ok := m.Selected(); ok {
		return "  " + m.styles.Tooltip.Render(blk.Tooltip)
	}
	if _, ok := m.layout(); ok {
		return m.styles.Muted.Render("  ←/→ select a job  h/l scroll")
	}
	return ""
}

func (m Model) render() string {
	if m.cleared {
		return m.styles.Muted.Render("  The last request failed. See the Results tab for details.")
	}
	if m.chart == nil {
		return m.styles.Muted.Render("  " + timeline.EmptyMessage)
	}
	out, err := m.chart.View(m.chartWidth(), m.xOffset, m.selected)
	if err != nil {
		return m.styles.Muted.Render("  " + err.Error())
	}
	title := m.styles.Title.Render("  Machine Timeline")
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return title + "\n\n" + strings.Join(lines, "\n")
}
