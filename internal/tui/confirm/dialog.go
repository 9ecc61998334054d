package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/schedviz/internal/ui"
)

type Action string

const (
	ActionDeleteExports Action = "delete-exports"
	ActionClearExports  Action = "clear-exports"
)

// ResultMsg arrives after the dialog has closed.
type ResultMsg struct {
	Confirmed bool
	Action    Action
	IDs       []string
}

type Model struct {
	Title    string
	Message  string
	Action   Action
	IDs      []string
	active   bool
	selected bool // true = confirm selected
}

func New(title, message string, action Action, ids []string) Model {
	return Model{
		Title:   title,
		Message: message,
		Action:  action,
		IDs:     ids,
		active:  true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) close(confirmed bool) (Model, tea.Cmd) {
	m.active = false
	res := ResultMsg{Confirmed: confirmed, Action: m.Action, IDs: m.IDs}
	return m, func() tea.Msg { return res }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			return m.close(true)
		case "n", "N", "esc":
			return m.close(false)
		case "enter":
			return m.close(m.selected)
		case "tab", "left", "right", "h", "l":
			m.selected = !m.selected
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(56)

	title := lipgloss.NewStyle().Bold(true).
		Foreground(ui.ColorWarning).
		Render(m.Title)

	yesStyle := lipgloss.NewStyle().Padding(0, 1)
	noStyle := lipgloss.NewStyle().Padding(0, 1)
	white := lipgloss.Color("#F9FAFB")

	if m.selected {
		yesStyle = yesStyle.Bold(true).Background(ui.ColorSuccess).Foreground(white)
		noStyle = noStyle.Foreground(ui.ColorMuted)
	} else {
		yesStyle = yesStyle.Foreground(ui.ColorMuted)
		noStyle = noStyle.Bold(true).Background(ui.ColorFailure).Foreground(white)
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s  %s\n\ny/n to confirm, esc to cancel",
		title, m.Message,
		yesStyle.Render("Yes"), noStyle.Render("No"))

	return style.Render(content)
}
