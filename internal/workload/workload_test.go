package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomRanges(t *testing.T) {
	w := Random(200, 3, NewRand(42))

	require.Equal(t, 3, w.NumMachines)
	require.Len(t, w.Jobs, 200)
	for i, j := range w.Jobs {
		require.Equal(t, i+1, j.JobID)
		require.GreaterOrEqual(t, j.ProcessingTime, MinProcessingTime)
		require.LessOrEqual(t, j.ProcessingTime, MaxProcessingTime)
		require.GreaterOrEqual(t, j.Priority, MinPriority)
		require.LessOrEqual(t, j.Priority, MaxPriority)
		require.GreaterOrEqual(t, j.Machine, 1)
		require.LessOrEqual(t, j.Machine, 3)
	}
	require.NoError(t, w.Validate())
}

func TestRandomIsSeeded(t *testing.T) {
	require.Equal(t, Random(10, 2, NewRand(7)), Random(10, 2, NewRand(7)))
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	content := `
numMachines: 2
jobs:
  - processingTime: 5
    priority: 2
    machine: 1
  - jobId: 7
    processingTime: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	w, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, w.NumMachines)
	require.Equal(t, 1, w.Jobs[0].JobID)
	require.Equal(t, 7, w.Jobs[1].JobID)
	require.Equal(t, 1, w.Jobs[1].Priority)
	require.Equal(t, 9, w.TotalProcessingTime())
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	content := `{"numMachines": 1, "jobs": [{"jobId": 1, "processingTime": 3, "priority": 4, "machine": 1}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	w, err := Load(path)
	require.NoError(t, err)
	require.Len(t, w.Jobs, 1)
	require.Equal(t, 4, w.Jobs[0].Priority)
}

func TestValidate(t *testing.T) {
	base := Random(3, 2, NewRand(1))

	tests := []struct {
		name   string
		mutate func(*Workload)
	}{
		{"no machines", func(w *Workload) { w.NumMachines = 0 }},
		{"no jobs", func(w *Workload) { w.Jobs = nil }},
		{"zero processing time", func(w *Workload) { w.Jobs[0].ProcessingTime = 0 }},
		{"priority too high", func(w *Workload) { w.Jobs[1].Priority = 11 }},
		{"duplicate id", func(w *Workload) { w.Jobs[2].JobID = w.Jobs[0].JobID }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Workload{NumMachines: base.NumMachines, Jobs: append(base.Jobs[:0:0], base.Jobs...)}
			tt.mutate(&w)
			require.Error(t, w.Validate())
		})
	}
}

func TestRequestCopiesJobs(t *testing.T) {
	w := Random(2, 1, NewRand(3))
	req := w.Request("astar")
	req.Jobs[0].ProcessingTime = 999

	require.Equal(t, "astar", req.SchedulerType)
	require.Equal(t, 1, req.NumMachines)
	require.NotEqual(t, 999, w.Jobs[0].ProcessingTime)
}
