// Package timeline turns a schedule into a per-machine Gantt layout with
// proportional block positions and a time axis.
package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/altinukshini/schedviz/internal/model"
)

const (
	// MinTimeScale is the smallest width, in layout units, of the time axis.
	MinTimeScale = 500.0
	// UnitsPerTime is how many layout units one time unit gets once the
	// makespan is large enough to exceed MinTimeScale.
	UnitsPerTime = 30.0
	// MarkerTarget is the approximate number of axis intervals.
	MarkerTarget = 10
	// MinBlockWidth is used for every block when the makespan is zero.
	MinBlockWidth = 10.0

	EmptyMessage      = "No schedule data to display"
	InfeasibleMessage = "No feasible schedule found."
)

// Palette is indexed by job ID modulo its length.
var Palette = []string{
	"#4285F4", "#EA4335", "#FBBC05", "#34A853", "#8E24AA",
	"#0097A7", "#FF9800", "#795548", "#607D8B", "#1E88E5",
}

type Marker struct {
	Time   int
	Offset float64
}

type Block struct {
	JobID    int
	Start    int
	End      int
	Duration int
	Offset   float64
	Width    float64
	Color    string
	Label    string
	Tooltip  string
}

type Row struct {
	MachineID int
	Label     string
	Blocks    []Block
}

type Layout struct {
	// Empty is set when there is nothing to draw; Message says why.
	Empty   bool
	Message string
	// Degenerate is set when the makespan is zero. Blocks then sit at
	// offset 0 with MinBlockWidth and no markers are produced.
	Degenerate bool

	Makespan  int
	TimeScale float64
	TimeStep  int
	Markers   []Marker
	Rows      []Row
}

// ColorFor returns the palette colour for a job. Jobs whose IDs differ by a
// multiple of len(Palette) share a colour.
func ColorFor(jobID int) string {
	i := jobID % len(Palette)
	if i < 0 {
		i += len(Palette)
	}
	return Palette[i]
}

// Scale returns the axis width for a makespan.
func Scale(makespan int) float64 {
	return math.Max(MinTimeScale, float64(makespan)*UnitsPerTime)
}

// Step returns the marker interval for a makespan.
func Step(makespan int) int {
	if makespan <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(float64(makespan)/MarkerTarget)))
}

// Build lays out a schedule. Rows are ordered by numeric machine ID and
// blocks keep their order of appearance in the schedule.
func Build(schedule []model.Placement, makespan int) Layout {
	if len(schedule) == 0 {
		return Layout{Empty: true, Message: EmptyMessage}
	}

	l := Layout{
		Makespan:  makespan,
		TimeScale: Scale(makespan),
		TimeStep:  Step(makespan),
	}

	if makespan > 0 {
		for t := 0; t <= makespan; t += l.TimeStep {
			l.Markers = append(l.Markers, Marker{Time: t, Offset: l.position(t)})
		}
	} else {
		l.Degenerate = true
	}

	byMachine := make(map[int][]Block)
	for _, p := range schedule {
		byMachine[p.MachineID] = append(byMachine[p.MachineID], l.block(p))
	}

	ids := make([]int, 0, len(byMachine))
	for id := range byMachine {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	l.Rows = make([]Row, 0, len(ids))
	for _, id := range ids {
		l.Rows = append(l.Rows, Row{
			MachineID: id,
			Label:     fmt.Sprintf("Machine %d", id),
			Blocks:    byMachine[id],
		})
	}
	return l
}

// BuildResult lays out a solver result, reporting an infeasible result with
// its own message.
func BuildResult(r model.ScheduleResult) Layout {
	l := Build(r.Schedule, r.Makespan)
	if l.Empty {
		l.Message = InfeasibleMessage
	}
	return l
}

func (l Layout) position(t int) float64 {
	return float64(t) / float64(l.Makespan) * l.TimeScale
}

func (l Layout) block(p model.Placement) Block {
	b := Block{
		JobID:    p.JobID,
		Start:    p.StartTime,
		End:      p.EndTime,
		Duration: p.Duration(),
		Color:    ColorFor(p.JobID),
		Label:    fmt.Sprintf("J%d", p.JobID),
		Tooltip:  fmt.Sprintf("Job %d: Start %d, End %d, Duration %d", p.JobID, p.StartTime, p.EndTime, p.Duration()),
	}
	if l.Makespan <= 0 {
		b.Width = MinBlockWidth
		return b
	}
	b.Offset = l.position(p.StartTime)
	b.Width = float64(b.Duration) / float64(l.Makespan) * l.TimeScale
	return b
}

// Blocks returns every block in row order, then schedule order.
func (l Layout) Blocks() []Block {
	var out []Block
	for _, r := range l.Rows {
		out = append(out, r.Blocks...)
	}
	return out
}
