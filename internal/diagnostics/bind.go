// Package diagnostics converts a solver's search trace into chart-ready
// series, exploration bars and a readable solution path.
package diagnostics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/altinukshini/schedviz/internal/model"
)

const (
	HeuristicTitle   = "Heuristic Values During Search"
	ExplorationTitle = "Search Space Exploration by Level"

	NoHeuristicMessage   = "No heuristic data available"
	NoExplorationMessage = "No exploration data available"
	NoPathMessage        = "No solution path available."
	NoTraceMessage       = "No search diagnostics were returned for this schedule."

	ExplorationSeries = "Nodes Explored"
	ExplorationColor  = "#34A853"
	ExplorationBorder = "#28A745"
)

type Series struct {
	Name   string
	Color  string
	Values []float64
}

type HeuristicChart struct {
	Variant model.HeuristicVariant
	NoData  bool
	Message string
	// Labels are 1-based step numbers, one per record.
	Labels []int
	Series []Series
}

type Bar struct {
	Key   string
	Level int
	Label string
	Count int
}

type ExplorationChart struct {
	NoData  bool
	Message string
	Bars    []Bar
}

// MaxCount is the largest bar count, or 0.
func (c ExplorationChart) MaxCount() int {
	m := 0
	for _, b := range c.Bars {
		m = max(m, b.Count)
	}
	return m
}

type Step struct {
	Number      int
	Job         int
	Machine     int
	StartTime   int
	Description string
}

type SolutionPath struct {
	Empty   bool
	Message string
	Steps   []Step
}

type Summary struct {
	Algorithm     string
	Iterations    int
	NodesExpanded int
	ExecutionTime float64
}

func (s Summary) ExecutionTimeLabel() string {
	return fmt.Sprintf("%.4f seconds", s.ExecutionTime)
}

// Diagnostics is everything the search panels show for one result. Absent
// is set when the result carried no trace at all.
type Diagnostics struct {
	Absent      bool
	Message     string
	Summary     Summary
	Heuristic   HeuristicChart
	Exploration ExplorationChart
	Path        SolutionPath
}

// Bind builds diagnostics from a trace. The trace is only read.
func Bind(trace *model.SearchTrace) Diagnostics {
	if trace == nil {
		return Diagnostics{
			Absent:      true,
			Message:     NoTraceMessage,
			Heuristic:   HeuristicChart{NoData: true, Message: NoHeuristicMessage},
			Exploration: ExplorationChart{NoData: true, Message: NoExplorationMessage},
			Path:        SolutionPath{Empty: true, Message: NoPathMessage},
		}
	}
	return Diagnostics{
		Summary: Summary{
			Algorithm:     trace.Algorithm,
			Iterations:    trace.Iterations,
			NodesExpanded: trace.NodesExpanded,
			ExecutionTime: trace.ExecutionTime,
		},
		Heuristic:   BindHeuristic(trace.HeuristicValues),
		Exploration: BindExploration(trace.ExplorationByLevel),
		Path:        BindPath(trace.SolutionPath),
	}
}

// BindHeuristic produces three aligned series for cost-decomposed records and
// a single series for heuristic-only records.
func BindHeuristic(v model.HeuristicValues) HeuristicChart {
	n := v.Len()
	if n == 0 {
		return HeuristicChart{NoData: true, Message: NoHeuristicMessage}
	}

	c := HeuristicChart{Variant: v.Variant, Labels: make([]int, n)}
	for i := range c.Labels {
		c.Labels[i] = i + 1
	}

	switch v.Variant {
	case model.VariantCostDecomposed:
		f := make([]float64, n)
		g := make([]float64, n)
		h := make([]float64, n)
		for i, r := range v.Costs {
			f[i], g[i], h[i] = r.F, r.G, r.H
		}
		c.Series = []Series{
			{Name: "f(n) = g(n) + h(n)", Color: "#EA4335", Values: f},
			{Name: "g(n) - Path Cost", Color: "#4285F4", Values: g},
			{Name: "h(n) - Heuristic", Color: "#FBBC05", Values: h},
		}
	case model.VariantHeuristicOnly:
		h := make([]float64, n)
		for i, r := range v.Heuristics {
			h[i] = r.Heuristic
		}
		c.Series = []Series{
			{Name: "h(n) - Heuristic Value", Color: "#4285F4", Values: h},
		}
	}
	return c
}

// BindExploration orders levels numerically. Keys that are not integers sort
// after every numeric key, in string order.
func BindExploration(byLevel map[string]int) ExplorationChart {
	if len(byLevel) == 0 {
		return ExplorationChart{NoData: true, Message: NoExplorationMessage}
	}

	type keyed struct {
		key     string
		level   int
		numeric bool
	}
	keys := make([]keyed, 0, len(byLevel))
	for k := range byLevel {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		keys = append(keys, keyed{key: k, level: n, numeric: err == nil})
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.numeric != b.numeric {
			return a.numeric
		}
		if a.numeric && a.level != b.level {
			return a.level < b.level
		}
		return a.key < b.key
	})

	c := ExplorationChart{Bars: make([]Bar, 0, len(keys))}
	for _, k := range keys {
		label := "Level " + k.key
		if k.numeric {
			label = "Level " + strconv.Itoa(k.level)
		}
		c.Bars = append(c.Bars, Bar{
			Key:   k.key,
			Level: k.level,
			Label: label,
			Count: byLevel[k.key],
		})
	}
	return c
}

// BindPath renders zero-based path steps with one-based job and machine
// numbers.
func BindPath(steps []model.PathStep) SolutionPath {
	if len(steps) == 0 {
		return SolutionPath{Empty: true, Message: NoPathMessage}
	}
	p := SolutionPath{Steps: make([]Step, 0, len(steps))}
	for i, s := range steps {
		st := Step{
			Number:    i + 1,
			Job:       s.JobIndex + 1,
			Machine:   s.MachineIndex + 1,
			StartTime: s.StartTime,
		}
		st.Description = fmt.Sprintf("Schedule Job %d on Machine %d at time %d", st.Job, st.Machine, st.StartTime)
		p.Steps = append(p.Steps, st)
	}
	return p
}
