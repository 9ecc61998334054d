package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/schedviz/internal/api"
	"github.com/altinukshini/schedviz/internal/chartpng"
	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/export"
	"github.com/altinukshini/schedviz/internal/ingest"
	"github.com/altinukshini/schedviz/internal/model"
	"github.com/altinukshini/schedviz/internal/ops"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/tui/charts"
	"github.com/altinukshini/schedviz/internal/tui/cleanup"
	"github.com/altinukshini/schedviz/internal/tui/confirm"
	"github.com/altinukshini/schedviz/internal/tui/diagview"
	"github.com/altinukshini/schedviz/internal/tui/exportsview"
	"github.com/altinukshini/schedviz/internal/tui/payloadview"
	"github.com/altinukshini/schedviz/internal/tui/resultsview"
	"github.com/altinukshini/schedviz/internal/tui/timelineview"
	"github.com/altinukshini/schedviz/internal/ui"
	"github.com/altinukshini/schedviz/internal/workload"
)

type View int

const loadingExports = "Loading exports..."

const (
	ViewResults View = iota
	ViewTimeline
	ViewDiagnostics
	ViewExports
)

// Solver is the scheduling service the app submits to.
type Solver interface {
	Schedule(ctx context.Context, req model.ScheduleRequest) ([]byte, error)
	Algorithms(ctx context.Context) ([]model.Algorithm, error)
	BaseURL() string
}

// Browser opens URLs outside the terminal.
type Browser interface {
	Browse(url string) error
}

type Options struct {
	Solver    Solver
	Manager   *present.Manager
	Ingestor  *ingest.Ingestor
	Exports   *export.Store
	Workload  workload.Workload
	Scheduler string
	Rand      *rand.Rand
	Browser   Browser
	Logger    *slog.Logger
}

type App struct {
	solver   Solver
	manager  *present.Manager
	ingestor *ingest.Ingestor
	exports  *export.Store
	browser  Browser
	rng      *rand.Rand
	logger   *slog.Logger

	// Views
	resultsView   resultsview.Model
	timelineView  timelineview.Model
	diagView      diagview.Model
	exportsView   exportsview.Model
	payloadView   payloadview.Model
	confirmDialog confirm.Model
	cleanupForm   cleanup.Model
	spinner       spinner.Model
	styles        ui.Styles

	// State
	workload    workload.Workload
	algorithms  []model.Algorithm
	algIdx      int
	currentView View
	width       int
	height      int
	status      string
	loading     bool
	showHelp    bool
	// lastScheduler is the scheduler that produced the current snapshot.
	lastScheduler string
}

func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := opts.Rand
	if rng == nil {
		rng = workload.NewRand(0)
	}
	styles := ui.NewStyles(opts.Manager.Theme())

	a := App{
		solver:       opts.Solver,
		manager:      opts.Manager,
		ingestor:     opts.Ingestor,
		exports:      opts.Exports,
		browser:      opts.Browser,
		rng:          rng,
		logger:       logger,
		resultsView:  resultsview.New(styles),
		timelineView: timelineview.New(styles),
		diagView:     diagview.New(styles),
		exportsView:  exportsview.New(opts.Exports.Dir()),
		payloadView:  payloadview.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.ColorPrimary))),
		styles:       styles,
		workload:     opts.Workload,
		algorithms:   append([]model.Algorithm(nil), model.DefaultAlgorithms...),
		currentView:  ViewResults,
		status:       "Press s to schedule the jobs",
	}
	a.algIdx = indexOf(a.algorithms, opts.Scheduler)
	a.resultsView.SetWorkload(a.workload, a.algorithm().ID)
	return a
}

func indexOf(algs []model.Algorithm, id string) int {
	for i, alg := range algs {
		if alg.ID == id {
			return i
		}
	}
	return 0
}

func (a App) algorithm() model.Algorithm {
	if a.algIdx >= 0 && a.algIdx < len(a.algorithms) {
		return a.algorithms[a.algIdx]
	}
	return model.DefaultAlgorithms[0]
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.fetchAlgorithms(), a.fetchExports())
}

// --- Commands ---

func (a App) fetchAlgorithms() tea.Cmd {
	solver := a.solver
	return func() tea.Msg {
		algs, err := solver.Algorithms(context.Background())
		return ui.AlgorithmsLoadedMsg{Algorithms: algs, Err: err}
	}
}

func (a App) submit() tea.Cmd {
	solver := a.solver
	scheduler := a.algorithm().ID
	req := a.workload.Request(scheduler)
	return func() tea.Msg {
		raw, err := solver.Schedule(context.Background(), req)
		return ui.ScheduleDoneMsg{Scheduler: scheduler, Raw: raw, Err: err}
	}
}

func (a App) fetchExports() tea.Cmd {
	store := a.exports
	return func() tea.Msg {
		entries, err := store.List()
		if err != nil {
			return ui.ExportsLoadedMsg{Err: err}
		}
		var total int64
		for _, e := range entries {
			total += e.Size
		}
		return ui.ExportsLoadedMsg{Entries: entries, TotalSize: total}
	}
}

// saveExport writes the snapshot's JSON and, when asked, PNG renderings of
// the two diagnostics charts in the current theme.
func (a App) saveExport(snap *model.Snapshot, withCharts bool) tea.Cmd {
	store := a.exports
	theme := a.manager.Theme()
	meta := export.Meta{
		Algorithm:   snap.Algorithm(),
		Scheduler:   a.lastScheduler,
		Makespan:    snap.Result.Makespan,
		NumJobs:     snap.Result.NumJobs,
		NumMachines: snap.Result.NumMachines,
		Theme:       string(theme.Theme()),
		ReceivedAt:  snap.ReceivedAt,
	}
	return func() tea.Msg {
		entry, err := store.Save(meta, ingest.ExportFileName, func(w io.Writer) error {
			return ingest.WriteSnapshot(w, snap)
		})
		if err != nil {
			return ui.ExportDoneMsg{Err: err}
		}
		if !withCharts {
			return ui.ExportDoneMsg{Entry: entry}
		}

		d := diagnostics.Bind(snap.Result.Visualization)
		renders := []struct {
			name string
			draw func(io.Writer) error
		}{
			{chartpng.HeuristicFile, func(w io.Writer) error {
				return chartpng.Heuristic(w, d.Heuristic, present.OptionsFor(theme, diagnostics.HeuristicTitle),
					chartpng.DefaultWidth, chartpng.DefaultHeight)
			}},
			{chartpng.ExplorationFile, func(w io.Writer) error {
				return chartpng.Exploration(w, d.Exploration, present.OptionsFor(theme, diagnostics.ExplorationTitle),
					chartpng.DefaultWidth, chartpng.DefaultHeight)
			}},
		}
		var written []string
		var errs []error
		for _, r := range renders {
			if _, err := store.Attach(entry.ID, r.name, r.draw); err != nil {
				if !errors.Is(err, chartpng.ErrNoData) {
					errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
				}
				continue
			}
			written = append(written, r.name)
			entry.Files = append(entry.Files, r.name)
		}
		return ui.ExportDoneMsg{Entry: entry, Charts: written, Err: errors.Join(errs...)}
	}
}

func (a App) deleteExports(ids []string) tea.Cmd {
	store, logger := a.exports, a.logger
	return func() tea.Msg {
		res, err := ops.BulkDeleteExports(context.Background(), store, ids, func(completed, total int) {
			logger.Debug("deleting exports", "completed", completed, "total", total)
		})
		if err != nil {
			return ui.ExportDeletedMsg{Count: res.Completed, Err: err}
		}
		return ui.ExportDeletedMsg{Count: res.Completed, Err: res.Err()}
	}
}

func (a App) loadPayload(e export.Entry) tea.Cmd {
	store := a.exports
	title := fmt.Sprintf("%s  %s", e.Algorithm, e.ID[:min(8, len(e.ID))])
	return func() tea.Msg {
		data, err := store.Read(e.ID, ingest.ExportFileName)
		return ui.PayloadLoadedMsg{Title: title, Content: string(data), Err: err}
	}
}

func (a App) openSolver() tea.Cmd {
	b, url := a.browser, a.solver.BaseURL()
	return func() tea.Msg {
		if b == nil {
			return ui.StatusMsg{Text: "No browser available; solver is at " + url}
		}
		if err := b.Browse(url); err != nil {
			return ui.StatusMsg{Text: fmt.Sprintf("Error opening browser: %v", err)}
		}
		return ui.StatusMsg{Text: "Opened " + url}
	}
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle confirm dialog result (arrives AFTER dialog deactivates itself)
	if result, ok := msg.(confirm.ResultMsg); ok {
		if result.Confirmed && len(result.IDs) > 0 {
			a.status = fmt.Sprintf("Deleting %d exports...", len(result.IDs))
			a.exportsView.ClearSelection()
			cmds = append(cmds, a.deleteExports(result.IDs))
		}
		return &a, tea.Batch(cmds...)
	}

	if result, ok := msg.(cleanup.ResultMsg); ok {
		if result.Applied {
			a.confirmClear(result.Filter)
		}
		return &a, nil
	}

	_, isKey := msg.(tea.KeyMsg)
	if isKey && a.cleanupForm.IsActive() {
		var cmd tea.Cmd
		a.cleanupForm, cmd = a.cleanupForm.Update(msg)
		return &a, cmd
	}

	// Handle confirmation dialog input (key events while dialog is showing)
	if isKey && a.confirmDialog.IsActive() {
		var cmd tea.Cmd
		a.confirmDialog, cmd = a.confirmDialog.Update(msg)
		return &a, cmd
	}

	// Keys go straight to the exports list while its filter is being typed.
	if isKey && a.currentView == ViewExports && a.exportsView.IsFiltering() {
		var cmd tea.Cmd
		a.exportsView, cmd = a.exportsView.Update(msg)
		return &a, cmd
	}

	// The payload viewer owns the keyboard until it is closed.
	if km, isKey := msg.(tea.KeyMsg); isKey && a.currentView == ViewExports && a.payloadView.IsOpen() {
		switch {
		case km.String() == "ctrl+c":
			return &a, tea.Quit
		case km.String() == "esc" && !a.payloadView.IsSearching():
			a.payloadView.Close()
			return &a, nil
		}
		var cmd tea.Cmd
		a.payloadView, cmd = a.payloadView.Update(msg)
		return &a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case spinner.TickMsg:
		if !a.loading {
			return &a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return &a, cmd

	case tea.KeyMsg:
		// Help overlay dismisses on any key
		if a.showHelp {
			a.showHelp = false
			return &a, nil
		}
		if cmd, handled := a.handleKey(msg); handled {
			return &a, cmd
		}

	case ui.AlgorithmsLoadedMsg:
		if msg.Err != nil {
			a.logger.Warn("load algorithms", "error", msg.Err)
		} else if len(msg.Algorithms) > 0 {
			current := a.algorithm().ID
			a.algorithms = msg.Algorithms
			a.algIdx = indexOf(a.algorithms, current)
			a.resultsView.SetWorkload(a.workload, a.algorithm().ID)
		}
		return &a, nil

	case ui.ScheduleDoneMsg:
		a.loading = false
		if msg.Err != nil {
			a.logger.Error("schedule request failed", "scheduler", msg.Scheduler, "error", msg.Err)
			a.resultsView.SetError(api.Explain(msg.Err, a.solver.BaseURL()))
			a.timelineView.Clear()
			a.status = fmt.Sprintf("Error: %v", msg.Err)
			return &a, nil
		}
		a.ingest(msg.Scheduler, msg.Raw)
		return &a, nil

	case ui.ExportDoneMsg:
		if msg.Entry.ID == "" {
			a.status = fmt.Sprintf("Error exporting: %v", msg.Err)
			return &a, nil
		}
		a.status = fmt.Sprintf("Exported to %s", msg.Entry.File(ingest.ExportFileName))
		if len(msg.Charts) > 0 {
			a.status += fmt.Sprintf(" with %s", strings.Join(msg.Charts, ", "))
		}
		if msg.Err != nil {
			a.status += fmt.Sprintf(" (chart error: %v)", msg.Err)
		}
		return &a, a.fetchExports()

	case ui.ExportsLoadedMsg:
		var cmd tea.Cmd
		a.exportsView, cmd = a.exportsView.Update(msg)
		switch {
		case msg.Err != nil:
			a.logger.Warn("list exports", "error", msg.Err)
			if a.currentView == ViewExports {
				a.status = fmt.Sprintf("Error loading exports: %v", msg.Err)
			}
		case a.status == loadingExports:
			a.status = fmt.Sprintf("%d exports", len(msg.Entries))
		}
		return &a, cmd

	case ui.ExportDeletedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error deleting exports: %v", msg.Err)
		} else {
			a.status = fmt.Sprintf("Deleted %d exports", msg.Count)
		}
		return &a, a.fetchExports()

	case ui.PayloadLoadedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error reading export: %v", msg.Err)
			return &a, nil
		}
		a.payloadView.Open(msg.Title, msg.Content)
		a.status = msg.Title
		return &a, nil

	case ui.StatusMsg:
		a.status = msg.Text
		return &a, nil
	}

	// Propagate to the active view.
	var cmd tea.Cmd
	switch a.currentView {
	case ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case ViewTimeline:
		a.timelineView, cmd = a.timelineView.Update(msg)
	case ViewDiagnostics:
		a.diagView, cmd = a.diagView.Update(msg)
	case ViewExports:
		a.exportsView, cmd = a.exportsView.Update(msg)
	}
	cmds = append(cmds, cmd)
	return &a, tea.Batch(cmds...)
}

// handleKey runs app-level key bindings. Keys it does not handle fall
// through to the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true
		return nil, true
	}

	switch msg.String() {
	case "1", "2", "3", "4":
		return a.switchView(View(msg.String()[0] - '1')), true
	}

	switch {
	case key.Matches(msg, ui.Keys.Submit) && !(a.currentView == ViewExports && msg.Type == tea.KeyEnter):
		if a.loading {
			a.status = "A scheduling request is already running"
			return nil, true
		}
		alg := a.algorithm()
		a.loading = true
		a.status = fmt.Sprintf("Running %s algorithm...", strings.ToUpper(alg.ID))
		a.logger.Info("submitting schedule", "scheduler", alg.ID, "jobs", len(a.workload.Jobs), "machines", a.workload.NumMachines)
		return tea.Batch(a.submit(), a.spinner.Tick), true

	case key.Matches(msg, ui.Keys.Theme):
		state, err := a.manager.ToggleTheme(context.Background())
		a.applyStyles(ui.NewStyles(state))
		a.status = fmt.Sprintf("Theme: %s", state.Theme())
		if err != nil {
			a.status += fmt.Sprintf(" (not saved: %v)", err)
		}
		return nil, true

	case key.Matches(msg, ui.Keys.Export), key.Matches(msg, ui.Keys.ExportCharts):
		snap := a.ingestor.Snapshot()
		if snap == nil {
			a.status = ingest.NoDataMessage
			return nil, true
		}
		withCharts := key.Matches(msg, ui.Keys.ExportCharts)
		a.status = "Exporting..."
		return a.saveExport(snap, withCharts), true

	case key.Matches(msg, ui.Keys.Algorithm):
		a.algIdx = (a.algIdx + 1) % len(a.algorithms)
		alg := a.algorithm()
		a.resultsView.SetWorkload(a.workload, alg.ID)
		a.status = fmt.Sprintf("Scheduler: %s", alg.Name)
		return nil, true

	case key.Matches(msg, ui.Keys.Regenerate):
		if a.currentView == ViewExports {
			a.status = loadingExports
			return a.fetchExports(), true
		}
		n, machines := len(a.workload.Jobs), a.workload.NumMachines
		if n == 0 {
			n = 5
		}
		a.workload = workload.Random(n, max(1, machines), a.rng)
		a.resultsView.SetWorkload(a.workload, a.algorithm().ID)
		a.status = fmt.Sprintf("Generated %d random jobs", n)
		return nil, true

	case key.Matches(msg, ui.Keys.Open):
		return a.openSolver(), true
	}

	if a.currentView == ViewExports {
		switch {
		case key.Matches(msg, ui.Keys.Inspect):
			if e := a.exportsView.SelectedEntry(); e != nil {
				return a.loadPayload(*e), true
			}
			return nil, true

		case key.Matches(msg, ui.Keys.Delete):
			ids := a.exportsView.SelectedExports()
			if len(ids) == 0 {
				if e := a.exportsView.SelectedEntry(); e != nil {
					ids = []string{e.ID}
				}
			}
			if len(ids) > 0 {
				a.confirmDialog = confirm.New("Delete exports",
					fmt.Sprintf("Delete %d export(s) from disk?", len(ids)),
					confirm.ActionDeleteExports, ids)
			}
			return nil, true

		case key.Matches(msg, ui.Keys.ClearAll):
			schedulers := make([]string, len(a.algorithms))
			for i, alg := range a.algorithms {
				schedulers[i] = alg.ID
			}
			a.cleanupForm = cleanup.New(schedulers, exportAlgorithms(a.exportsView.Entries()),
				ops.BulkDeleteFilter{Scheduler: a.algorithm().ID})
			a.cleanupForm.SetSize(a.width, max(1, a.height-5))
			return nil, true
		}
	}
	return nil, false
}

// confirmClear asks before deleting every listed export matching f.
func (a *App) confirmClear(f ops.BulkDeleteFilter) {
	matched := ops.FilterExports(a.exportsView.Entries(), f)
	if len(matched) == 0 {
		a.status = "No exports match " + cleanup.Summary(f)
		return
	}
	ids := make([]string, len(matched))
	for i, e := range matched {
		ids[i] = e.ID
	}
	a.confirmDialog = confirm.New("Clear exports",
		fmt.Sprintf("Delete %d export(s) matching %s?", len(ids), cleanup.Summary(f)),
		confirm.ActionClearExports, ids)
}

// exportAlgorithms lists the distinct search algorithms recorded in entries.
func exportAlgorithms(entries []export.Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if e.Algorithm != "" && !seen[e.Algorithm] {
			seen[e.Algorithm] = true
			out = append(out, e.Algorithm)
		}
	}
	slices.Sort(out)
	return out
}

func (a *App) switchView(v View) tea.Cmd {
	if v == a.currentView {
		return nil
	}
	a.currentView = v
	switch v {
	case ViewResults:
		a.status = "Results"
	case ViewTimeline:
		a.status = "Timeline"
	case ViewDiagnostics:
		a.status = "Search diagnostics"
		d, err := a.ingestor.Rebind()
		switch {
		case errors.Is(err, ingest.ErrNoSnapshot):
		case err != nil:
			a.status = fmt.Sprintf("Error drawing charts: %v", err)
			fallthrough
		default:
			a.diagView.SetDiagnostics(d, a.chart(present.SlotHeuristic), a.chart(present.SlotExploration))
		}
	case ViewExports:
		a.status = loadingExports
		return a.fetchExports()
	}
	return nil
}

// ingest records a successful payload and points every view at the new
// charts. A payload that fails to decode is shown as a failure and leaves
// the previous result in place.
func (a *App) ingest(scheduler string, raw []byte) {
	rendered, err := a.ingestor.Ingest(raw)
	if rendered.Snapshot == nil {
		a.logger.Error("decode schedule result", "error", err)
		a.resultsView.SetError(api.Explain(err, a.solver.BaseURL()))
		a.timelineView.Clear()
		a.status = fmt.Sprintf("Error: %v", err)
		return
	}
	a.lastScheduler = scheduler
	r := rendered.Snapshot.Result
	a.resultsView.SetResult(r)
	a.timelineView.SetChart(a.chart(present.SlotTimeline))
	a.diagView.SetDiagnostics(rendered.Diagnostics, a.chart(present.SlotHeuristic), a.chart(present.SlotExploration))

	if r.Feasible() {
		a.status = fmt.Sprintf("Schedule ready: makespan %d (%s)", r.Makespan, strings.ToUpper(scheduler))
	} else {
		a.status = "No feasible schedule found."
	}
	if err != nil {
		a.status += fmt.Sprintf(" (chart error: %v)", err)
	}
}

func (a App) chart(slot present.Slot) *charts.Chart {
	h, ok := a.manager.Handle(slot)
	if !ok {
		return nil
	}
	c, _ := h.(*charts.Chart)
	return c
}

func (a *App) applyStyles(styles ui.Styles) {
	a.styles = styles
	a.resultsView.SetStyles(styles)
	a.timelineView.SetStyles(styles)
	a.diagView.SetStyles(styles)
}

func (a *App) propagateSize() {
	// Total vertical budget:
	//   header(1) + tabs(1) + status(1) = 3 lines of chrome
	//   pane border top(1) + bottom(1) = 2 lines
	contentH := max(1, a.height-5)
	size := tea.WindowSizeMsg{Width: max(1, a.width-4), Height: contentH}

	a.resultsView, _ = a.resultsView.Update(size)
	a.timelineView, _ = a.timelineView.Update(size)
	a.diagView, _ = a.diagView.Update(size)
	a.exportsView, _ = a.exportsView.Update(size)
	a.payloadView, _ = a.payloadView.Update(size)
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.styles, a.solver.BaseURL(), a.algorithm().Name, a.width)
	tabs := a.renderTabs()
	contentH := max(1, a.height-5)

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.cleanupForm.IsActive():
		content = a.cleanupForm.View()
	case a.confirmDialog.IsActive():
		content = a.confirmDialog.View()
	default:
		var body string
		switch a.currentView {
		case ViewResults:
			body = a.resultsView.View()
			if a.loading {
				body = a.loadingLine(fmt.Sprintf("Running %s algorithm...", strings.ToUpper(a.algorithm().ID)))
			}
		case ViewTimeline:
			body = a.timelineView.View()
			if a.loading {
				body = a.loadingLine("Generating visualization...")
			}
		case ViewDiagnostics:
			body = a.diagView.View()
		case ViewExports:
			body = a.exportsView.View()
			if a.payloadView.IsOpen() {
				body = a.payloadView.View()
			}
		}
		content = a.styles.PaneFocused.Width(a.width - 2).Height(contentH).Render(body)
	}

	statusBar := RenderStatusBar(a.styles, a.status, a.contextHints(), a.width)

	// Hard clamp: ensure content never overflows the terminal.
	maxContentLines := a.height - 3
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + tabs + "\n" + content + "\n" + statusBar
}

func (a App) loadingLine(text string) string {
	return "\n  " + a.spinner.View() + " " + a.styles.Text.Render(text)
}

func (a App) renderTabs() string {
	labels := []string{"[1] Results", "[2] Timeline", "[3] Search", "[4] Exports"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if View(i) == a.currentView {
			parts[i] = a.styles.TabActive.Render(l)
		} else {
			parts[i] = a.styles.TabInactive.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) contextHints() string {
	switch a.currentView {
	case ViewResults:
		return "s:schedule  a:algorithm  r:random jobs  e/P:export  t:theme  ?:help"
	case ViewTimeline:
		return "←/→:select job  h/l:scroll  j/k:rows  s:schedule  t:theme  ?:help"
	case ViewDiagnostics:
		return "j/k:scroll  s:schedule  P:export charts  t:theme  ?:help"
	case ViewExports:
		if a.payloadView.IsOpen() {
			return "/:search  n/N:match  esc:back"
		}
		return "enter:view  space:select  d:delete  x:clear  r:refresh  f:filter  ?:help"
	}
	return "?:help  q:quit"
}

func (a App) renderHelp() string {
	contentH := max(1, a.height-5)

	bold := a.styles.Title
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := a.styles.Text

	row := func(b key.Binding) string {
		h := b.Help()
		return "  " + keyStyle.Render(h.Key) + desc.Render(h.Desc) + "\n"
	}
	text := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	k := ui.Keys
	var b strings.Builder
	b.WriteString("\n" + bold.Render("  General") + "\n\n")
	b.WriteString(text("1-4", "Switch tab: Results, Timeline, Search, Exports"))
	b.WriteString(row(k.Submit))
	b.WriteString(row(k.Algorithm))
	b.WriteString(row(k.Regenerate))
	b.WriteString(row(k.Theme))
	b.WriteString(row(k.Export))
	b.WriteString(row(k.ExportCharts))
	b.WriteString(row(k.Open))
	b.WriteString(row(k.Quit))

	b.WriteString("\n" + bold.Render("  Timeline") + "\n\n")
	b.WriteString(row(k.PrevBlock))
	b.WriteString(row(k.NextBlock))
	b.WriteString(row(k.ScrollLeft))
	b.WriteString(row(k.ScrollRight))

	b.WriteString("\n" + bold.Render("  Exports") + "\n\n")
	b.WriteString(row(k.Inspect))
	b.WriteString(row(k.Select))
	b.WriteString(row(k.Delete))
	b.WriteString(row(k.ClearAll))
	b.WriteString(text("r", "Refresh list"))
	b.WriteString(text("f", "Filter list"))

	b.WriteString("\n" + a.styles.Muted.Render("  Press any key to close") + "\n")

	return a.styles.PaneFocused.Width(a.width - 2).Height(contentH).Render(b.String())
}
