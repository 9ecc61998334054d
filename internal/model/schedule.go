package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Placement is one scheduled job. On the wire it is the 4-tuple
// [jobId, startTime, endTime, machineId].
type Placement struct {
	JobID     int
	StartTime int
	EndTime   int
	MachineID int
}

func (p Placement) Duration() int {
	return p.EndTime - p.StartTime
}

func (p Placement) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{p.JobID, p.StartTime, p.EndTime, p.MachineID})
}

func (p *Placement) UnmarshalJSON(data []byte) error {
	var row []int
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("decode placement: %w", err)
	}
	if len(row) != 4 {
		return fmt.Errorf("decode placement: want 4 fields, got %d", len(row))
	}
	*p = Placement{JobID: row[0], StartTime: row[1], EndTime: row[2], MachineID: row[3]}
	return nil
}

// ScheduleResult is the solver's response to a scheduling request.
type ScheduleResult struct {
	Schedule            []Placement  `json:"schedule"`
	Makespan            int          `json:"makespan"`
	TotalProcessingTime int          `json:"totalProcessingTime"`
	NumJobs             int          `json:"numJobs"`
	NumMachines         int          `json:"numMachines"`
	Visualization       *SearchTrace `json:"visualization,omitempty"`
}

// Feasible reports whether the solver returned any placements.
func (r ScheduleResult) Feasible() bool {
	return len(r.Schedule) > 0
}

// Utilization is total processing time over machine capacity for the makespan.
func (r ScheduleResult) Utilization() float64 {
	if r.Makespan <= 0 || r.NumMachines <= 0 {
		return 0
	}
	return float64(r.TotalProcessingTime) / float64(r.Makespan*r.NumMachines)
}

// Snapshot is the most recent successfully decoded result together with the
// exact payload it was decoded from.
type Snapshot struct {
	Result     ScheduleResult
	Raw        []byte
	ReceivedAt time.Time
}

// Algorithm returns the search algorithm recorded in the trace, if any.
func (s *Snapshot) Algorithm() string {
	if s == nil || s.Result.Visualization == nil {
		return ""
	}
	return s.Result.Visualization.Algorithm
}
