package diagnostics

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors are the theme-dependent colours used by the text renderers.
type Colors struct {
	Title  string
	Legend string
	Tick   string
	Grid   string
}

var sparks = []rune("▁▂▃▄▅▆▇█")

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// RenderHeuristic draws one sparkline per series on a shared scale so the
// f, g and h lines stay comparable.
func RenderHeuristic(c HeuristicChart, width int, colors Colors) string {
	title := fg(colors.Title).Bold(true).Render("  " + HeuristicTitle)
	if c.NoData {
		return title + "\n\n  " + fg(colors.Tick).Render(c.Message)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")

	var legend []string
	for _, s := range c.Series {
		legend = append(legend, fg(s.Color).Render("■")+" "+fg(colors.Legend).Render(s.Name))
	}
	b.WriteString("  " + strings.Join(legend, "   ") + "\n\n")

	nameW := 0
	for _, s := range c.Series {
		nameW = max(nameW, len(shortName(s.Name)))
	}
	cols := max(10, width-nameW-24)
	for _, s := range c.Series {
		line := sparkline(s.Values, cols, lo, hi)
		last := s.Values[len(s.Values)-1]
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			fg(colors.Legend).Render(fmt.Sprintf("%-*s", nameW, shortName(s.Name))),
			fg(s.Color).Render(line),
			fg(colors.Tick).Render(fmt.Sprintf("last %.2f", last))))
	}
	b.WriteString(fg(colors.Tick).Render(fmt.Sprintf("  steps 1-%d  range %.2f to %.2f", len(c.Labels), lo, hi)))
	return b.String()
}

func shortName(name string) string {
	if i := strings.Index(name, " "); i > 0 {
		return name[:i]
	}
	return name
}

// sparkline averages values into at most cols buckets.
func sparkline(values []float64, cols int, lo, hi float64) string {
	n := len(values)
	if n == 0 {
		return ""
	}
	buckets := min(n, cols)
	out := make([]rune, buckets)
	for i := range buckets {
		from := i * n / buckets
		to := max(from+1, (i+1)*n/buckets)
		sum := 0.0
		for _, v := range values[from:to] {
			sum += v
		}
		avg := sum / float64(to-from)
		idx := 0
		if hi > lo {
			idx = int((avg - lo) / (hi - lo) * float64(len(sparks)-1))
		}
		out[i] = sparks[min(max(idx, 0), len(sparks)-1)]
	}
	return string(out)
}

// RenderExploration draws one proportional bar per level in bound order.
func RenderExploration(c ExplorationChart, width int, colors Colors) string {
	title := fg(colors.Title).Bold(true).Render("  " + ExplorationTitle)
	if c.NoData {
		return title + "\n\n  " + fg(colors.Tick).Render(c.Message)
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString("  " + fg(ExplorationColor).Render("■") + " " + fg(colors.Legend).Render(ExplorationSeries) + "\n\n")

	labelW, countW := 0, 0
	for _, bar := range c.Bars {
		labelW = max(labelW, len(bar.Label))
		countW = max(countW, len(fmt.Sprint(bar.Count)))
	}
	barMaxLen := max(5, min(50, width-labelW-countW-8))
	maxCount := c.MaxCount()

	for _, bar := range c.Bars {
		barLen := 0
		if maxCount > 0 {
			barLen = int(float64(bar.Count) / float64(maxCount) * float64(barMaxLen))
			if barLen < 1 && bar.Count > 0 {
				barLen = 1
			}
		}
		b.WriteString(fmt.Sprintf("  %s %s%s %s\n",
			fg(colors.Legend).Render(fmt.Sprintf("%-*s", labelW, bar.Label)),
			fg(ExplorationColor).Render(strings.Repeat("█", barLen)),
			fg(colors.Grid).Render(strings.Repeat("░", barMaxLen-barLen)),
			fg(colors.Tick).Render(fmt.Sprintf("%*d", countW, bar.Count))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPath lists the solution path steps in order.
func RenderPath(p SolutionPath, colors Colors) string {
	title := fg(colors.Title).Bold(true).Render("  Solution Path")
	if p.Empty {
		return title + "\n\n  " + fg(colors.Tick).Render(p.Message)
	}
	var b strings.Builder
	b.WriteString(title + "\n\n")
	w := len(fmt.Sprint(len(p.Steps)))
	for _, s := range p.Steps {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			fg(colors.Tick).Render(fmt.Sprintf("%*d.", w, s.Number)),
			fg(colors.Legend).Render(s.Description)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSummary shows the algorithm metrics block.
func RenderSummary(s Summary, colors Colors) string {
	bold := fg(colors.Title).Bold(true)
	muted := fg(colors.Tick)
	var b strings.Builder
	b.WriteString(bold.Render("  Algorithm Performance") + "\n\n")
	b.WriteString(fmt.Sprintf("  Algorithm:       %s\n", bold.Render(s.Algorithm)))
	b.WriteString(fmt.Sprintf("  Iterations:      %s\n", muted.Render(fmt.Sprint(s.Iterations))))
	b.WriteString(fmt.Sprintf("  Nodes Expanded:  %s\n", muted.Render(fmt.Sprint(s.NodesExpanded))))
	b.WriteString(fmt.Sprintf("  Execution Time:  %s", muted.Render(s.ExecutionTimeLabel())))
	return b.String()
}
