package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func result(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a result command")
	}
	res, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatal("command did not produce a ResultMsg")
	}
	return res
}

func TestConfirmWithY(t *testing.T) {
	m := New("Delete", "Delete 2 exports?", ActionDeleteExports, []string{"a", "b"})
	m, cmd := m.Update(keyMsg("y"))

	if m.IsActive() {
		t.Error("dialog should close")
	}
	res := result(t, cmd)
	if !res.Confirmed || res.Action != ActionDeleteExports || len(res.IDs) != 2 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestEnterDefaultsToNo(t *testing.T) {
	m := New("Delete", "Sure?", ActionClearExports, nil)
	_, cmd := m.Update(keyMsg("enter"))
	if result(t, cmd).Confirmed {
		t.Error("enter without moving the selection should decline")
	}
}

func TestTabThenEnterConfirms(t *testing.T) {
	m := New("Delete", "Sure?", ActionClearExports, nil)
	m, _ = m.Update(keyMsg("tab"))
	_, cmd := m.Update(keyMsg("enter"))
	if !result(t, cmd).Confirmed {
		t.Error("enter on Yes should confirm")
	}
}

func TestEscCancels(t *testing.T) {
	m := New("Delete", "Sure?", ActionClearExports, nil)
	m, cmd := m.Update(keyMsg("esc"))
	if result(t, cmd).Confirmed {
		t.Error("esc should decline")
	}
	if m.View() != "" {
		t.Error("closed dialog should render nothing")
	}
}
