package cleanup

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/schedviz/internal/ops"
)

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = m.Update(msg)
	}
	return m, cmd
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

func TestPreselectsCurrentScheduler(t *testing.T) {
	m := New([]string{"astar", "gbfs"}, []string{"A*"}, ops.BulkDeleteFilter{Scheduler: "gbfs"})
	if got := m.Filter(); got.Scheduler != "gbfs" || got.Algorithm != "" || got.OlderThan != 0 {
		t.Errorf("Filter() = %+v", got)
	}
}

func TestCycleAndApply(t *testing.T) {
	m := New([]string{"astar", "gbfs"}, []string{"A*", "GBFS"}, ops.BulkDeleteFilter{})

	// scheduler: any -> astar
	m, _ = press(m, "enter")
	// algorithm: any -> GBFS (backwards wraps to the last option)
	m, _ = press(m, "j", "left")
	// age: any -> 1h -> 1 day
	m, _ = press(m, "j", "enter", "enter")
	m, cmd := press(m, "a")

	if m.IsActive() {
		t.Error("apply should close the overlay")
	}
	res := result(t, cmd)
	want := ops.BulkDeleteFilter{Scheduler: "astar", Algorithm: "GBFS", OlderThan: 24 * time.Hour}
	if !res.Applied || res.Filter != want {
		t.Errorf("result = %+v, want applied %+v", res, want)
	}
}

func TestCycleWrapsToAny(t *testing.T) {
	m := New([]string{"astar"}, nil, ops.BulkDeleteFilter{Scheduler: "astar"})
	m, _ = press(m, "enter")
	if m.Filter().Scheduler != "" {
		t.Error("cycling past the last option should return to any")
	}
}

func TestClearAndCancel(t *testing.T) {
	m := New([]string{"astar"}, []string{"A*"}, ops.BulkDeleteFilter{Scheduler: "astar", Algorithm: "A*"})
	m, _ = press(m, "c")
	if m.Filter() != (ops.BulkDeleteFilter{}) {
		t.Errorf("c should clear, got %+v", m.Filter())
	}
	_, cmd := press(m, "esc")
	if result(t, cmd).Applied {
		t.Error("esc should cancel")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		f    ops.BulkDeleteFilter
		want string
	}{
		{ops.BulkDeleteFilter{}, "all exports"},
		{ops.BulkDeleteFilter{Scheduler: "astar"}, "scheduler:astar"},
		{ops.BulkDeleteFilter{Algorithm: "A*", OlderThan: 7 * 24 * time.Hour}, "algorithm:A* older than 7 days"},
		{ops.BulkDeleteFilter{OlderThan: time.Hour}, "older than 1h"},
	}
	for _, tt := range tests {
		if got := Summary(tt.f); got != tt.want {
			t.Errorf("Summary(%+v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}
