package present

import (
	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/timeline"
)

type Slot int

const (
	SlotTimeline Slot = iota
	SlotHeuristic
	SlotExploration
)

// Slots lists every slot in restyle order.
var Slots = []Slot{SlotTimeline, SlotHeuristic, SlotExploration}

func (s Slot) String() string {
	switch s {
	case SlotTimeline:
		return "timeline"
	case SlotHeuristic:
		return "heuristic"
	case SlotExploration:
		return "exploration"
	default:
		return "unknown"
	}
}

func (s Slot) Title() string {
	switch s {
	case SlotTimeline:
		return "Machine Timeline"
	case SlotHeuristic:
		return diagnostics.HeuristicTitle
	case SlotExploration:
		return diagnostics.ExplorationTitle
	default:
		return ""
	}
}

// Spec is the data a slot is drawn from. Exactly one payload matches Slot.
// A payload in its no-data state is still a spec.
type Spec struct {
	Slot        Slot
	Timeline    timeline.Layout
	Heuristic   diagnostics.HeuristicChart
	Exploration diagnostics.ExplorationChart
}

func TimelineSpec(l timeline.Layout) Spec {
	return Spec{Slot: SlotTimeline, Timeline: l}
}

func HeuristicSpec(c diagnostics.HeuristicChart) Spec {
	return Spec{Slot: SlotHeuristic, Heuristic: c}
}

func ExplorationSpec(c diagnostics.ExplorationChart) Spec {
	return Spec{Slot: SlotExploration, Exploration: c}
}

// Handle is a live chart instance. Restyle must not change the data it
// shows; Destroy releases it and must be called at most once.
type Handle interface {
	Spec() Spec
	Options() Options
	Restyle(Options)
	Destroy()
}

// Backend creates chart instances.
type Backend interface {
	Create(spec Spec, opts Options) (Handle, error)
}
