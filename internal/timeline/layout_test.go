package timeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/schedviz/internal/model"
)

func placements(rows ...[4]int) []model.Placement {
	out := make([]model.Placement, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Placement{JobID: r[0], StartTime: r[1], EndTime: r[2], MachineID: r[3]})
	}
	return out
}

func TestBuildTwoMachines(t *testing.T) {
	l := Build(placements([4]int{1, 0, 5, 1}, [4]int{2, 5, 9, 1}, [4]int{3, 0, 4, 2}), 9)

	require.False(t, l.Empty)
	assert.Equal(t, 500.0, l.TimeScale)
	assert.Equal(t, 1, l.TimeStep)
	require.Len(t, l.Rows, 2)
	assert.Equal(t, "Machine 1", l.Rows[0].Label)
	assert.Equal(t, "Machine 2", l.Rows[1].Label)

	m1 := l.Rows[0].Blocks
	require.Len(t, m1, 2)
	assert.LessOrEqual(t, m1[0].Offset+m1[0].Width, m1[1].Offset+1e-9, "blocks on machine 1 overlap")
	assert.InDelta(t, 500.0, m1[1].Offset+m1[1].Width, 1e-9)

	m2 := l.Rows[1].Blocks
	require.Len(t, m2, 1)
	assert.Less(t, m2[0].Offset+m2[0].Width, l.TimeScale)
	assert.Equal(t, "Job 3: Start 0, End 4, Duration 4", m2[0].Tooltip)
}

func TestBuildBlocksWithinScale(t *testing.T) {
	schedule := placements(
		[4]int{0, 0, 7, 0}, [4]int{1, 7, 20, 0}, [4]int{2, 0, 33, 1},
		[4]int{3, 33, 40, 1}, [4]int{4, 3, 41, 2},
	)
	l := Build(schedule, 41)

	assert.Equal(t, 41*UnitsPerTime, l.TimeScale)
	for _, b := range l.Blocks() {
		assert.GreaterOrEqual(t, b.Offset, 0.0)
		assert.GreaterOrEqual(t, b.Width, 0.0)
		assert.LessOrEqual(t, b.Offset+b.Width, l.TimeScale+1e-9)
		assert.InDelta(t, float64(b.Start)/41*l.TimeScale, b.Offset, 1e-9)
		assert.InDelta(t, float64(b.Duration)/41*l.TimeScale, b.Width, 1e-9)
	}
}

func TestBuildMarkers(t *testing.T) {
	tests := []struct {
		makespan int
		step     int
		count    int
	}{
		{makespan: 9, step: 1, count: 10},
		{makespan: 10, step: 1, count: 11},
		{makespan: 25, step: 3, count: 9},
		{makespan: 100, step: 10, count: 11},
	}
	for _, tt := range tests {
		l := Build(placements([4]int{0, 0, tt.makespan, 0}), tt.makespan)
		assert.Equal(t, tt.step, l.TimeStep, "makespan %d", tt.makespan)
		require.Len(t, l.Markers, tt.count, "makespan %d", tt.makespan)
		for i, m := range l.Markers {
			assert.Equal(t, i*tt.step, m.Time)
			assert.LessOrEqual(t, m.Time, tt.makespan)
			assert.InDelta(t, float64(m.Time)/float64(tt.makespan)*l.TimeScale, m.Offset, 1e-9)
		}
	}
}

func TestBuildRowsSortedNumerically(t *testing.T) {
	l := Build(placements([4]int{0, 0, 1, 10}, [4]int{1, 0, 1, 2}, [4]int{2, 0, 1, 1}), 1)

	var ids []int
	for _, r := range l.Rows {
		ids = append(ids, r.MachineID)
	}
	assert.Equal(t, []int{1, 2, 10}, ids)
}

func TestBuildEmpty(t *testing.T) {
	l := Build(nil, 0)
	assert.True(t, l.Empty)
	assert.Equal(t, EmptyMessage, l.Message)
	assert.Empty(t, l.Rows)
	assert.Empty(t, l.Markers)

	r := BuildResult(model.ScheduleResult{})
	assert.True(t, r.Empty)
	assert.Equal(t, InfeasibleMessage, r.Message)
	assert.NotPanics(t, func() { Render(r, RenderOptions{Width: 80, Selected: -1}) })
}

func TestBuildZeroMakespan(t *testing.T) {
	l := Build(placements([4]int{0, 0, 0, 0}, [4]int{1, 0, 0, 1}), 0)

	assert.True(t, l.Degenerate)
	assert.Empty(t, l.Markers)
	for _, b := range l.Blocks() {
		assert.Zero(t, b.Offset)
		assert.Equal(t, MinBlockWidth, b.Width)
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#4285F4", ColorFor(0))
	assert.Equal(t, ColorFor(3), ColorFor(3+len(Palette)))
	assert.Equal(t, ColorFor(9), ColorFor(-1))
}

func TestRenderShowsRowsAndSelection(t *testing.T) {
	l := Build(placements([4]int{1, 0, 5, 1}, [4]int{2, 5, 9, 1}, [4]int{3, 0, 4, 2}), 9)

	out := Render(l, RenderOptions{Width: 120, Selected: 1})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Machine 1")
	assert.Contains(t, lines[2], "J1")
	assert.Contains(t, lines[2], "J2")
	assert.Contains(t, lines[2], "▒")
	assert.Contains(t, lines[3], "Machine 2")
	assert.NotContains(t, lines[3], "▒")
}

func TestRenderScrolls(t *testing.T) {
	l := Build(placements([4]int{0, 0, 100, 0}), 100)
	require.Equal(t, 300, l.Columns())

	assert.Greater(t, l.MaxXOffset(80), 0)
	out := Render(l, RenderOptions{Width: 80, XOffset: 50, Selected: -1})
	assert.Contains(t, out, "columns 51-")
}
