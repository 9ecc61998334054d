package payloadview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/schedviz/internal/search"
	"github.com/altinukshini/schedviz/internal/ui"
)

// Model shows one exported file with in-file search.
type Model struct {
	viewport viewport.Model
	content  string
	title    string
	width    int
	height   int
	ready    bool
	open     bool

	searchInput textinput.Model
	searching   bool
	query       string
	matches     []search.Match
	matchIndex  int
	searchErr   error
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search (re: for regex)..."
	ti.CharLimit = 256
	return Model{searchInput: ti}
}

// Open shows content under title, resetting any previous search.
func (m *Model) Open(title, content string) {
	m.title = title
	m.content = content
	m.open = true
	m.query = ""
	m.matches = nil
	m.matchIndex = 0
	m.searchErr = nil
	if m.ready {
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
	}
}

func (m *Model) Close() {
	m.open = false
	m.searching = false
	m.searchInput.Blur()
}

func (m Model) IsOpen() bool {
	return m.open
}

func (m Model) IsSearching() bool {
	return m.searching
}

func (m Model) Matches() []search.Match {
	return m.matches
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.runSearch(m.searchInput.Value())
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.searching = true
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			return m, textinput.Blink
		case "n":
			m.jump(1)
			return m, nil
		case "N":
			m.jump(-1)
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerH)
			m.ready = true
			if m.content != "" {
				m.viewport.SetContent(m.applyHighlights())
			}
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerH
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) runSearch(text string) {
	m.query = text
	m.matchIndex = 0
	m.matches, m.searchErr = search.Lines(m.content, search.ParseQuery(text))
	m.viewport.SetContent(m.applyHighlights())
	if len(m.matches) > 0 {
		m.viewport.SetYOffset(m.matches[0].Line - 1)
	}
}

func (m *Model) jump(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.matchIndex = (m.matchIndex + delta + len(m.matches)) % len(m.matches)
	m.viewport.SetContent(m.applyHighlights())
	m.viewport.SetYOffset(m.matches[m.matchIndex].Line - 1)
}

// applyHighlights returns the content with matching lines highlighted.
func (m Model) applyHighlights() string {
	if len(m.matches) == 0 {
		return m.content
	}

	current := m.matches[m.matchIndex].Line - 1
	matchSet := make(map[int]bool, len(m.matches))
	for _, match := range m.matches {
		matchSet[match.Line-1] = true
	}

	highlight := lipgloss.NewStyle().Background(lipgloss.Color("#374151"))
	selected := lipgloss.NewStyle().Background(lipgloss.Color("#92400E")).Bold(true)

	lines := strings.Split(m.content, "\n")
	for i, line := range lines {
		switch {
		case i == current:
			lines[i] = selected.Render(line)
		case matchSet[i]:
			lines[i] = highlight.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := fmt.Sprintf(" %s  %3.f%%", m.title, m.viewport.ScrollPercent()*100)
	switch {
	case m.searchErr != nil:
		header += fmt.Sprintf("  [%v]", m.searchErr)
	case m.query != "" && len(m.matches) > 0:
		header += fmt.Sprintf("  [%d/%d matches]", m.matchIndex+1, len(m.matches))
	case m.query != "":
		header += "  [no matches]"
	}
	hints := ui.StyleMuted.Render("  /:search  n/N:match  j/k:line  g/G:top/bot  esc:back")
	top := lipgloss.NewStyle().Bold(true).Render(header) + hints

	second := ""
	if m.searching {
		second = "  /" + m.searchInput.View()
	}
	return top + "\n" + second + "\n" + m.viewport.View()
}
