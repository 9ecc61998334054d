package cleanup

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/schedviz/internal/ops"
	"github.com/altinukshini/schedviz/internal/ui"
)

// Summary returns a short description of a filter for prompts.
func Summary(f ops.BulkDeleteFilter) string {
	var parts []string
	if f.Scheduler != "" {
		parts = append(parts, "scheduler:"+f.Scheduler)
	}
	if f.Algorithm != "" {
		parts = append(parts, "algorithm:"+f.Algorithm)
	}
	if f.OlderThan > 0 {
		parts = append(parts, "older than "+ageLabel(f.OlderThan))
	}
	if len(parts) == 0 {
		return "all exports"
	}
	return strings.Join(parts, " ")
}

// ResultMsg is emitted when the user applies or cancels the overlay.
type ResultMsg struct {
	Applied bool
	Filter  ops.BulkDeleteFilter
}

type field int

const (
	fieldScheduler field = iota
	fieldAlgorithm
	fieldAge
	fieldCount
)

var ageOptions = []time.Duration{
	time.Hour,
	24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

func ageLabel(d time.Duration) string {
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// Model picks which exports to clear. Each field cycles through its
// options, with -1 meaning any.
type Model struct {
	active       bool
	focused      field
	schedulers   []string
	algorithms   []string
	schedulerIdx int
	algorithmIdx int
	ageIdx       int
	width        int
	height       int
}

// New opens the overlay with current preselected where it matches an
// option.
func New(schedulers, algorithms []string, current ops.BulkDeleteFilter) Model {
	m := Model{
		active:       true,
		schedulers:   schedulers,
		algorithms:   algorithms,
		schedulerIdx: indexOf(schedulers, current.Scheduler),
		algorithmIdx: indexOf(algorithms, current.Algorithm),
		ageIdx:       -1,
	}
	for i, d := range ageOptions {
		if d == current.OlderThan {
			m.ageIdx = i
		}
	}
	return m
}

func indexOf(options []string, v string) int {
	if v == "" {
		return -1
	}
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}

func (m Model) IsActive() bool { return m.active }

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down", "tab":
			m.moveFocus(1)
		case "k", "up", "shift+tab":
			m.moveFocus(-1)

		case "enter", "right", "l":
			m.cycle(cycleForward)
		case "left", "h":
			m.cycle(cycleBackward)

		case "a":
			m.active = false
			return m, emitResult(true, m.Filter())

		case "c":
			m.schedulerIdx = -1
			m.algorithmIdx = -1
			m.ageIdx = -1

		case "esc":
			m.active = false
			return m, emitResult(false, ops.BulkDeleteFilter{})
		}
	}
	return m, nil
}

func (m *Model) cycle(step func(idx, count int) int) {
	switch m.focused {
	case fieldScheduler:
		m.schedulerIdx = step(m.schedulerIdx, len(m.schedulers))
	case fieldAlgorithm:
		m.algorithmIdx = step(m.algorithmIdx, len(m.algorithms))
	case fieldAge:
		m.ageIdx = step(m.ageIdx, len(ageOptions))
	}
}

// Filter returns the currently selected filter.
func (m Model) Filter() ops.BulkDeleteFilter {
	var f ops.BulkDeleteFilter
	if m.schedulerIdx >= 0 && m.schedulerIdx < len(m.schedulers) {
		f.Scheduler = m.schedulers[m.schedulerIdx]
	}
	if m.algorithmIdx >= 0 && m.algorithmIdx < len(m.algorithms) {
		f.Algorithm = m.algorithms[m.algorithmIdx]
	}
	if m.ageIdx >= 0 && m.ageIdx < len(ageOptions) {
		f.OlderThan = ageOptions[m.ageIdx]
	}
	return f
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Width(12).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(12).Bold(true).Foreground(ui.ColorPrimary)
	valueStyle := lipgloss.NewStyle().Bold(true)
	anyStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true)

	f := m.Filter()
	rows := make([]string, 0, int(fieldCount))
	for fld := field(0); fld < fieldCount; fld++ {
		ls := labelStyle
		if fld == m.focused {
			ls = focusedLabelStyle
		}

		var label, value string
		switch fld {
		case fieldScheduler:
			label = "Scheduler:"
			value = anyStyle.Render("Any scheduler")
			if f.Scheduler != "" {
				value = valueStyle.Render(f.Scheduler)
			}
		case fieldAlgorithm:
			label = "Algorithm:"
			value = anyStyle.Render("Any algorithm")
			if f.Algorithm != "" {
				value = valueStyle.Render(f.Algorithm)
			}
		case fieldAge:
			label = "Older than:"
			value = anyStyle.Render("Any age")
			if f.OlderThan > 0 {
				value = valueStyle.Render(ageLabel(f.OlderThan))
			}
		}

		cursor := "  "
		if fld == m.focused {
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(label), value))
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		MarginBottom(1).
		Render("Clear Exports")

	help := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1).
		Render("enter/←/→: change  a: apply  c: clear  esc: cancel")

	body := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), help)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(56).
		Render(body)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m *Model) moveFocus(delta int) {
	next := int(m.focused) + delta
	if next < 0 {
		next = int(fieldCount) - 1
	}
	if next >= int(fieldCount) {
		next = 0
	}
	m.focused = field(next)
}

// cycleForward advances the index by one. -1 means any; going past the last
// option wraps back to -1.
func cycleForward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx++
	if idx >= count {
		idx = -1
	}
	return idx
}

func cycleBackward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx--
	if idx < -1 {
		idx = count - 1
	}
	return idx
}

func emitResult(applied bool, f ops.BulkDeleteFilter) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Applied: applied, Filter: f}
	}
}
