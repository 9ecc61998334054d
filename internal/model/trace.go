package model

import (
	"encoding/json"
	"fmt"
)

// SearchTrace is the diagnostic record the solver attaches to a result.
type SearchTrace struct {
	Algorithm          string          `json:"algorithm_name"`
	Iterations         int             `json:"search_iterations"`
	NodesExpanded      int             `json:"nodes_expanded"`
	ExecutionTime      float64         `json:"execution_time"`
	HeuristicValues    HeuristicValues `json:"heuristic_values"`
	ExplorationByLevel map[string]int  `json:"exploration_by_level"`
	SolutionPath       []PathStep      `json:"solution_path"`
}

// PathStep is one decision on the solution path, [jobIndex, startTime, machineIndex]
// on the wire. Indices are zero-based.
type PathStep struct {
	JobIndex     int
	StartTime    int
	MachineIndex int
}

func (s PathStep) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{s.JobIndex, s.StartTime, s.MachineIndex})
}

func (s *PathStep) UnmarshalJSON(data []byte) error {
	var row []int
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("decode path step: %w", err)
	}
	if len(row) != 3 {
		return fmt.Errorf("decode path step: want 3 fields, got %d", len(row))
	}
	*s = PathStep{JobIndex: row[0], StartTime: row[1], MachineIndex: row[2]}
	return nil
}

type HeuristicVariant int

const (
	VariantNone HeuristicVariant = iota
	// VariantCostDecomposed records carry f, g and h (A*).
	VariantCostDecomposed
	// VariantHeuristicOnly records carry a single heuristic value (greedy best-first).
	VariantHeuristicOnly
)

func (v HeuristicVariant) String() string {
	switch v {
	case VariantCostDecomposed:
		return "cost-decomposed"
	case VariantHeuristicOnly:
		return "heuristic-only"
	default:
		return "none"
	}
}

type CostRecord struct {
	F        float64 `json:"f_value"`
	G        float64 `json:"g_value"`
	H        float64 `json:"h_value"`
	Level    int     `json:"level,omitempty"`
	Makespan int     `json:"makespan,omitempty"`
}

type HeuristicRecord struct {
	Heuristic float64 `json:"heuristic"`
	Level     int     `json:"level,omitempty"`
	Makespan  int     `json:"makespan,omitempty"`
}

// HeuristicValues holds one of two record shapes. The shape is decided once
// from the first record: a record with an f_value key makes the whole
// sequence cost-decomposed.
type HeuristicValues struct {
	Variant    HeuristicVariant
	Costs      []CostRecord
	Heuristics []HeuristicRecord
}

func (h HeuristicValues) Len() int {
	switch h.Variant {
	case VariantCostDecomposed:
		return len(h.Costs)
	case VariantHeuristicOnly:
		return len(h.Heuristics)
	default:
		return 0
	}
}

func (h HeuristicValues) MarshalJSON() ([]byte, error) {
	switch h.Variant {
	case VariantCostDecomposed:
		return json.Marshal(h.Costs)
	case VariantHeuristicOnly:
		return json.Marshal(h.Heuristics)
	default:
		return []byte("[]"), nil
	}
}

func (h *HeuristicValues) UnmarshalJSON(data []byte) error {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode heuristic values: %w", err)
	}
	*h = HeuristicValues{}
	if len(records) == 0 {
		return nil
	}

	var first map[string]json.RawMessage
	if err := json.Unmarshal(records[0], &first); err != nil {
		return fmt.Errorf("decode heuristic record: %w", err)
	}
	if _, ok := first["f_value"]; ok {
		h.Variant = VariantCostDecomposed
		if err := json.Unmarshal(data, &h.Costs); err != nil {
			return fmt.Errorf("decode cost records: %w", err)
		}
		return nil
	}
	h.Variant = VariantHeuristicOnly
	if err := json.Unmarshal(data, &h.Heuristics); err != nil {
		return fmt.Errorf("decode heuristic records: %w", err)
	}
	return nil
}
