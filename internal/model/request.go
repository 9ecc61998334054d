package model

// JobSpec is one job in a scheduling request. Machine is a preferred machine
// hint the solvers currently ignore.
type JobSpec struct {
	JobID          int `json:"jobId" yaml:"jobId"`
	ProcessingTime int `json:"processingTime" yaml:"processingTime"`
	Priority       int `json:"priority" yaml:"priority"`
	Machine        int `json:"machine" yaml:"machine"`
}

type ScheduleRequest struct {
	Jobs          []JobSpec `json:"jobs"`
	NumMachines   int       `json:"numMachines"`
	SchedulerType string    `json:"schedulerType"`
}

// Algorithm describes a solver exposed by the /algorithms endpoint.
type Algorithm struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AlgorithmList struct {
	Algorithms []Algorithm `json:"algorithms"`
}

// DefaultAlgorithms mirrors what the solver advertises; used until the
// endpoint answers or when it is unreachable.
var DefaultAlgorithms = []Algorithm{
	{ID: "gbfs", Name: "Greedy Best-First Search (GBFS)", Description: "AI search algorithm that uses a heuristic to determine the next best node to explore."},
	{ID: "astar", Name: "A* Search Algorithm", Description: "AI search algorithm that uses both path cost and heuristic to find the optimal solution."},
}
