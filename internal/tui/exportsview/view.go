package exportsview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/altinukshini/schedviz/internal/export"
	"github.com/altinukshini/schedviz/internal/ui"
)

type exportItem struct {
	entry    export.Entry
	selected bool
}

func (e exportItem) Title() string {
	mark := " "
	if e.selected {
		mark = ui.StyleWarning.Render("● ")
	}
	name := e.entry.Algorithm
	if name == "" {
		name = e.entry.Scheduler
	}
	size := ui.StyleWarning.Render(humanize.IBytes(uint64(e.entry.Size)))
	return fmt.Sprintf("%s%s  makespan %d  %s", mark, name, e.entry.Makespan, size)
}

func (e exportItem) Description() string {
	parts := []string{
		ui.StyleInfo.Render(fmt.Sprintf("%d jobs / %d machines", e.entry.NumJobs, e.entry.NumMachines)),
	}
	if !e.entry.StoredAt.IsZero() {
		parts = append(parts, ui.StyleMuted.Render("saved "+humanize.Time(e.entry.StoredAt)))
	}
	parts = append(parts, ui.StyleMuted.Render(strings.Join(e.entry.Files, ", ")))
	return strings.Join(parts, "  ")
}

func (e exportItem) FilterValue() string {
	return e.entry.Algorithm + " " + e.entry.Scheduler + " " + e.entry.ID
}

// Model is the export history list.
type Model struct {
	list      list.Model
	entries   []export.Entry
	selected  map[string]bool
	totalSize int64
	dir       string
	width     int
	height    int
	loading   bool
	err       error
}

func New(dir string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.KeyMap.Filter = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	l.DisableQuitKeybindings()

	return Model{list: l, selected: make(map[string]bool), dir: dir, loading: true}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ExportsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.entries = msg.Entries
		m.totalSize = msg.TotalSize
		m.selected = make(map[string]bool)
		cmd := m.list.SetItems(m.buildItems())
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve one line for the header.
		m.list.SetSize(msg.Width, msg.Height-1)

	case tea.KeyMsg:
		if key.Matches(msg, ui.Keys.Select) && !m.IsFiltering() {
			if item, ok := m.list.SelectedItem().(exportItem); ok {
				id := item.entry.ID
				if m.selected[id] {
					delete(m.selected, id)
				} else {
					m.selected[id] = true
				}
				cmd := m.list.SetItems(m.buildItems())
				return m, cmd
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return "\n  Loading exports..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press r to retry.", m.err)
	}
	if len(m.entries) == 0 {
		return fmt.Sprintf("\n  No exports yet.\n\n  Press e on any tab to save the current schedule.\n  Exports are kept in %s", m.dir)
	}

	header := fmt.Sprintf("  %d exports | Total: %s | %s",
		len(m.entries), humanize.IBytes(uint64(m.totalSize)), m.dir)
	if n := len(m.selected); n > 0 {
		header += fmt.Sprintf(" | %d selected", n)
	}
	return ui.StyleMuted.Render(header) + "\n" + m.list.View()
}

// SelectedEntry returns the highlighted export, or nil.
func (m Model) SelectedEntry() *export.Entry {
	if item, ok := m.list.SelectedItem().(exportItem); ok {
		return &item.entry
	}
	return nil
}

func (m Model) Entries() []export.Entry {
	return m.entries
}

// IsFiltering returns true when the user is actively typing a filter.
func (m Model) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) buildItems() []list.Item {
	items := make([]list.Item, len(m.entries))
	for i, e := range m.entries {
		items[i] = exportItem{entry: e, selected: m.selected[e.ID]}
	}
	return items
}

// SelectedExports returns the IDs of all multi-selected exports in list
// order.
func (m Model) SelectedExports() []string {
	var ids []string
	for _, e := range m.entries {
		if m.selected[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (m *Model) ClearSelection() {
	for k := range m.selected {
		delete(m.selected, k)
	}
}
