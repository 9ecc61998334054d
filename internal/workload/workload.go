// Package workload produces the job lists submitted to the solver, either
// from a file or generated at random.
package workload

import (
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/altinukshini/schedviz/internal/model"
)

const (
	MinProcessingTime = 2
	MaxProcessingTime = 20
	MinPriority       = 1
	MaxPriority       = 10
)

// Workload is a set of jobs to schedule on a number of machines.
type Workload struct {
	NumMachines int             `yaml:"numMachines"`
	Jobs        []model.JobSpec `yaml:"jobs"`
}

// Random generates n jobs numbered from 1 with processing times in 2..20,
// priorities in 1..10 and a preferred machine in 1..machines.
func Random(n, machines int, rng *rand.Rand) Workload {
	w := Workload{NumMachines: machines, Jobs: make([]model.JobSpec, n)}
	for i := range w.Jobs {
		w.Jobs[i] = model.JobSpec{
			JobID:          i + 1,
			ProcessingTime: MinProcessingTime + rng.IntN(MaxProcessingTime-MinProcessingTime+1),
			Priority:       MinPriority + rng.IntN(MaxPriority-MinPriority+1),
			Machine:        1 + rng.IntN(max(1, machines)),
		}
	}
	return w
}

// NewRand returns a generator seeded from seed, or from the runtime when
// seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// Load reads a workload from a YAML or JSON file. Missing job IDs are
// numbered by position and missing priorities default to 1.
func Load(path string) (Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Workload{}, fmt.Errorf("read workload file: %w", err)
	}
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Workload{}, fmt.Errorf("parse workload file: %w", err)
	}
	for i := range w.Jobs {
		if w.Jobs[i].JobID == 0 {
			w.Jobs[i].JobID = i + 1
		}
		if w.Jobs[i].Priority == 0 {
			w.Jobs[i].Priority = 1
		}
	}
	if err := w.Validate(); err != nil {
		return Workload{}, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

func (w Workload) Validate() error {
	if w.NumMachines < 1 {
		return fmt.Errorf("numMachines must be at least 1")
	}
	if len(w.Jobs) == 0 {
		return fmt.Errorf("at least one job is required")
	}
	seen := make(map[int]bool, len(w.Jobs))
	for _, j := range w.Jobs {
		if j.ProcessingTime < 1 {
			return fmt.Errorf("job %d: processingTime must be at least 1", j.JobID)
		}
		if j.Priority < MinPriority || j.Priority > MaxPriority {
			return fmt.Errorf("job %d: priority must be between %d and %d", j.JobID, MinPriority, MaxPriority)
		}
		if seen[j.JobID] {
			return fmt.Errorf("job %d: duplicate jobId", j.JobID)
		}
		seen[j.JobID] = true
	}
	return nil
}

// TotalProcessingTime sums the processing time of every job.
func (w Workload) TotalProcessingTime() int {
	total := 0
	for _, j := range w.Jobs {
		total += j.ProcessingTime
	}
	return total
}

// Request builds the solver request for a scheduler type.
func (w Workload) Request(scheduler string) model.ScheduleRequest {
	jobs := make([]model.JobSpec, len(w.Jobs))
	copy(jobs, w.Jobs)
	return model.ScheduleRequest{
		Jobs:          jobs,
		NumMachines:   w.NumMachines,
		SchedulerType: scheduler,
	}
}
