package resultsview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/schedviz/internal/model"
	"github.com/altinukshini/schedviz/internal/timeline"
	"github.com/altinukshini/schedviz/internal/ui"
	"github.com/altinukshini/schedviz/internal/workload"
)

// Model shows the workload about to be submitted and the outcome of the
// last request: either the schedule or an explained failure.
type Model struct {
	workload  workload.Workload
	scheduler string
	result    *model.ScheduleResult
	errText   string
	styles    ui.Styles
	viewport  viewport.Model
	width     int
	height    int
	ready     bool
}

func New(styles ui.Styles) Model {
	return Model{styles: styles}
}

func (m *Model) SetStyles(styles ui.Styles) {
	m.styles = styles
	m.refresh()
}

func (m *Model) SetWorkload(w workload.Workload, scheduler string) {
	m.workload = w
	m.scheduler = scheduler
	m.refresh()
}

// SetResult shows a schedule and clears any previous error.
func (m *Model) SetResult(r model.ScheduleResult) {
	m.result = &r
	m.errText = ""
	m.refresh()
	if m.ready {
		m.viewport.GotoTop()
	}
}

// SetError shows a failure in place of the schedule. The last good result is
// kept and shown again by the next SetResult.
func (m *Model) SetError(text string) {
	m.errText = text
	m.refresh()
	if m.ready {
		m.viewport.GotoTop()
	}
}

func (m Model) Result() *model.ScheduleResult {
	return m.result
}

func (m Model) Error() string {
	return m.errText
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		if !m.ready {
			m.viewport = viewport.New(wsm.Width, wsm.Height)
			m.ready = true
		} else {
			m.viewport.Width = wsm.Width
			m.viewport.Height = wsm.Height
		}
		m.viewport.SetContent(m.render())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	return m.viewport.View()
}

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(m.renderOutcome())
	b.WriteString("\n\n")
	b.WriteString(m.renderWorkload())
	return b.String()
}

func (m Model) renderOutcome() string {
	title := m.styles.Title
	muted := m.styles.Muted

	if m.errText != "" {
		lines := strings.Split(m.errText, "\n")
		var b strings.Builder
		b.WriteString("  " + ui.StyleFailure.Bold(true).Render(lines[0]) + "\n")
		for _, l := range lines[1:] {
			b.WriteString("  " + ui.StyleFailure.Render(l) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}
	if m.result == nil {
		return title.Render("  Schedule Results") + "\n\n" +
			muted.Render("  No schedule yet. Press s to submit the jobs below.")
	}

	r := m.result
	var b strings.Builder
	b.WriteString(title.Render("  Schedule Results") + "\n\n")
	b.WriteString(fmt.Sprintf("  Makespan:              %s\n", title.Render(fmt.Sprint(r.Makespan))))
	b.WriteString(fmt.Sprintf("  Number of Jobs:        %d\n", r.NumJobs))
	b.WriteString(fmt.Sprintf("  Number of Machines:    %d\n", r.NumMachines))
	b.WriteString(fmt.Sprintf("  Total Processing Time: %d\n", r.TotalProcessingTime))
	if r.Feasible() {
		b.WriteString(fmt.Sprintf("  Utilization:           %.1f%%\n", r.Utilization()*100))
	}
	b.WriteString("\n")

	if !r.Feasible() {
		b.WriteString("  " + ui.StyleWarning.Render(timeline.InfeasibleMessage))
		return b.String()
	}
	b.WriteString(title.Render("  Schedule") + "\n\n")
	for _, p := range r.Schedule {
		b.WriteString(fmt.Sprintf("  Job %d: Start %d, End %d, Machine %d\n",
			p.JobID, p.StartTime, p.EndTime, p.MachineID))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderWorkload() string {
	title := m.styles.Title
	muted := m.styles.Muted
	w := m.workload

	var b strings.Builder
	b.WriteString(title.Render("  Jobs to Schedule") + "\n\n")
	if len(w.Jobs) == 0 {
		b.WriteString(muted.Render("  No jobs loaded. Press r to generate random jobs."))
		return b.String()
	}
	b.WriteString(muted.Render(fmt.Sprintf("  %d jobs on %d machines, total processing time %d, scheduler %s",
		len(w.Jobs), w.NumMachines, w.TotalProcessingTime(), m.scheduler)) + "\n\n")
	b.WriteString(muted.Render(fmt.Sprintf("  %-6s %-16s %-9s %s", "Job", "Processing Time", "Priority", "Machine")) + "\n")
	for _, j := range w.Jobs {
		b.WriteString(fmt.Sprintf("  %-6d %-16d %-9d %d\n", j.JobID, j.ProcessingTime, j.Priority, j.Machine))
	}
	return strings.TrimRight(b.String(), "\n")
}
