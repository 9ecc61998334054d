package charts

import (
	"context"
	"strings"
	"testing"

	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/model"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/timeline"
)

func sampleLayout() timeline.Layout {
	return timeline.Build([]model.Placement{
		{JobID: 1, StartTime: 0, EndTime: 5, MachineID: 1},
		{JobID: 2, StartTime: 5, EndTime: 8, MachineID: 1},
		{JobID: 3, StartTime: 0, EndTime: 4, MachineID: 2},
	}, 8)
}

func TestReplaceKeepsOneChartPerSlot(t *testing.T) {
	b := NewBackend(nil)
	m := present.NewManager(context.Background(), b, nil, nil)

	for range 3 {
		if _, err := m.Replace(present.SlotTimeline, present.TimelineSpec(sampleLayout())); err != nil {
			t.Fatalf("replace: %v", err)
		}
	}
	if _, err := m.Replace(present.SlotExploration, present.ExplorationSpec(diagnostics.BindExploration(map[string]int{"0": 1}))); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := b.Live(); got != 2 {
		t.Errorf("live charts = %d, want 2", got)
	}

	m.Close()
	if got := b.Live(); got != 0 {
		t.Errorf("live charts after close = %d, want 0", got)
	}
}

func TestRestyleKeepsData(t *testing.T) {
	b := NewBackend(nil)
	m := present.NewManager(context.Background(), b, nil, nil)

	h, err := m.Replace(present.SlotTimeline, present.TimelineSpec(sampleLayout()))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	c := h.(*Chart)
	before, _ := c.View(80, 0, -1)

	if _, err := m.ToggleTheme(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !c.Options().Dark {
		t.Error("chart should carry dark options after toggle")
	}
	if len(c.Spec().Timeline.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(c.Spec().Timeline.Rows))
	}
	after, _ := c.View(80, 0, -1)
	if !strings.Contains(after, "Machine 1") || !strings.Contains(before, "Machine 1") {
		t.Error("both renders should show the machine rows")
	}
}

func TestDestroyedChartRefusesToDraw(t *testing.T) {
	b := NewBackend(nil)
	h, err := b.Create(present.HeuristicSpec(diagnostics.HeuristicChart{NoData: true, Message: diagnostics.NoHeuristicMessage}), present.Options{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	c := h.(*Chart)
	out, err := c.View(80, 0, -1)
	if err != nil || !strings.Contains(out, diagnostics.NoHeuristicMessage) {
		t.Fatalf("View() = %q, %v", out, err)
	}

	c.Destroy()
	c.Destroy()
	if b.Live() != 0 {
		t.Errorf("live = %d after destroy", b.Live())
	}
	if _, err := c.View(80, 0, -1); err != ErrDestroyed {
		t.Errorf("err = %v, want ErrDestroyed", err)
	}
}

func TestUnknownSlot(t *testing.T) {
	b := NewBackend(nil)
	if _, err := b.Create(present.Spec{Slot: present.Slot(9)}, present.Options{}); err == nil {
		t.Error("expected an error for an unknown slot")
	}
}
