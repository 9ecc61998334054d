package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/schedviz/internal/api"
	"github.com/altinukshini/schedviz/internal/export"
	"github.com/altinukshini/schedviz/internal/ingest"
	"github.com/altinukshini/schedviz/internal/model"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/tui/charts"
	"github.com/altinukshini/schedviz/internal/ui"
	"github.com/altinukshini/schedviz/internal/workload"
)

const astarPayload = `{"schedule":[[1,0,5,1],[2,5,9,1],[3,0,4,2]],"makespan":9,"totalProcessingTime":13,"numJobs":3,"numMachines":2,
"visualization":{"algorithm_name":"A*","search_iterations":3,"nodes_expanded":7,"execution_time":0.5,
"heuristic_values":[{"f_value":9,"g_value":0,"h_value":9,"level":0,"makespan":0}],
"exploration_by_level":{"0":1,"1":3,"2":7},"solution_path":[[0,0,0],[1,5,0],[2,0,1]]}}`

type fakeSolver struct {
	raw   []byte
	err   error
	calls int
	last  model.ScheduleRequest
}

func (s *fakeSolver) Schedule(_ context.Context, req model.ScheduleRequest) ([]byte, error) {
	s.calls++
	s.last = req
	return s.raw, s.err
}

func (s *fakeSolver) Algorithms(context.Context) ([]model.Algorithm, error) {
	return model.DefaultAlgorithms, nil
}

func (s *fakeSolver) BaseURL() string { return "http://localhost:5000" }

type fakePrefs struct {
	values map[string]string
	err    error
}

func (p *fakePrefs) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *fakePrefs) Set(_ context.Context, key, value string) error {
	if p.err != nil {
		return p.err
	}
	p.values[key] = value
	return nil
}

type testApp struct {
	app     App
	solver  *fakeSolver
	backend *charts.Backend
	store   *export.Store
	prefs   *fakePrefs
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	solver := &fakeSolver{raw: []byte(astarPayload)}
	backend := charts.NewBackend(nil)
	prefs := &fakePrefs{values: map[string]string{}}
	manager := present.NewManager(context.Background(), backend, prefs, nil)
	store, err := export.NewStore(t.TempDir(), 0, 0, nil)
	if err != nil {
		t.Fatalf("failed to create export store: %v", err)
	}
	rng := workload.NewRand(7)

	app := NewApp(Options{
		Solver:    solver,
		Manager:   manager,
		Ingestor:  ingest.New(manager, nil),
		Exports:   store,
		Workload:  workload.Random(3, 2, rng),
		Scheduler: "astar",
		Rand:      rng,
	})
	ta := &testApp{app: app, solver: solver, backend: backend, store: store, prefs: prefs}
	ta.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return ta
}

// send runs one Update and returns the command it produced.
func (ta *testApp) send(msg tea.Msg) tea.Cmd {
	m, cmd := ta.app.Update(msg)
	ta.app = *m.(*App)
	return cmd
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run delivers the messages produced by cmd back into the app, except
// spinner ticks which would otherwise loop.
func (ta *testApp) run(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case nil, spinner.TickMsg:
		default:
			ta.run(ta.send(msg))
		}
	}
}

func (ta *testApp) submit(t *testing.T) {
	t.Helper()
	cmd := ta.send(keyMsg("s"))
	if !ta.app.loading {
		t.Fatal("app should be loading after submit")
	}
	for _, msg := range collect(cmd) {
		if done, ok := msg.(ui.ScheduleDoneMsg); ok {
			ta.send(done)
			return
		}
	}
	t.Fatal("submit produced no ScheduleDoneMsg")
}

func TestSubmitIngestsResult(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)

	if ta.app.loading {
		t.Error("loading should end when the response arrives")
	}
	if ta.solver.last.SchedulerType != "astar" || len(ta.solver.last.Jobs) != 3 {
		t.Errorf("unexpected request %+v", ta.solver.last)
	}
	if got := ta.backend.Live(); got != 3 {
		t.Errorf("live charts = %d, want 3", got)
	}
	r := ta.app.resultsView.Result()
	if r == nil || r.Makespan != 9 {
		t.Fatalf("results view should hold the result, got %+v", r)
	}
	if !strings.Contains(ta.app.status, "makespan 9") {
		t.Errorf("status = %q", ta.app.status)
	}

	// A second submission replaces rather than adds charts.
	ta.submit(t)
	if got := ta.backend.Live(); got != 3 {
		t.Errorf("live charts after resubmit = %d, want 3", got)
	}
}

func TestSubmitRefusedWhileLoading(t *testing.T) {
	ta := newTestApp(t)
	ta.send(keyMsg("s"))
	cmd := ta.send(keyMsg("s"))

	if cmd != nil {
		t.Error("second submit should not issue a request")
	}
	if !strings.Contains(ta.app.status, "already running") {
		t.Errorf("status = %q", ta.app.status)
	}
}

func TestLoadingTextShownWhileRunning(t *testing.T) {
	ta := newTestApp(t)
	ta.send(keyMsg("s"))

	if v := ta.app.View(); !strings.Contains(v, "Running ASTAR algorithm...") {
		t.Error("results tab should show the running message")
	}
	ta.send(keyMsg("2"))
	if v := ta.app.View(); !strings.Contains(v, "Generating visualization...") {
		t.Error("timeline tab should show the generating message")
	}
}

func TestUnreachableSolverShowsExplanation(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)

	ta.solver.err = fmt.Errorf("%w at %s: connection refused", api.ErrUnreachable, ta.solver.BaseURL())
	ta.submit(t)

	text := ta.app.resultsView.Error()
	if !strings.HasPrefix(text, api.FailureHeading) {
		t.Errorf("results error = %q", text)
	}
	if !strings.Contains(text, "Unable to connect to the server at http://localhost:5000") {
		t.Errorf("results error should explain the connection failure, got %q", text)
	}
	// The diagnostics charts from the earlier success stay alive.
	if _, ok := ta.app.manager.Handle(present.SlotHeuristic); !ok {
		t.Error("heuristic chart should survive a failed request")
	}
}

func TestMalformedPayloadKeepsPreviousResult(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)

	ta.solver.raw = []byte("not json")
	ta.submit(t)

	if !strings.HasPrefix(ta.app.resultsView.Error(), api.FailureHeading) {
		t.Errorf("decode failure should be shown, got %q", ta.app.resultsView.Error())
	}
	if snap := ta.app.ingestor.Snapshot(); snap == nil || snap.Result.Makespan != 9 {
		t.Error("previous snapshot should be kept")
	}
}

func TestThemeToggleRestylesAndPersists(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)
	ta.send(keyMsg("t"))

	if !ta.app.styles.Dark {
		t.Error("styles should switch to dark")
	}
	if ta.prefs.values[present.PreferenceKey] != string(present.Dark) {
		t.Errorf("persisted theme = %q", ta.prefs.values[present.PreferenceKey])
	}
	for _, slot := range present.Slots {
		c := ta.app.chart(slot)
		if c == nil || !c.Options().Dark {
			t.Errorf("%s chart not restyled", slot)
		}
	}
}

func TestThemeToggleSurvivesPersistFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.prefs.err = errors.New("disk full")
	ta.send(keyMsg("t"))

	if !ta.app.styles.Dark {
		t.Error("theme should change even when it cannot be saved")
	}
	if !strings.Contains(ta.app.status, "not saved") {
		t.Errorf("status = %q", ta.app.status)
	}
}

func TestExportWithoutResult(t *testing.T) {
	ta := newTestApp(t)
	cmd := ta.send(keyMsg("e"))

	if cmd != nil {
		t.Error("export without data should not run")
	}
	if ta.app.status != ingest.NoDataMessage {
		t.Errorf("status = %q", ta.app.status)
	}
}

func TestExportWritesSnapshotAndCharts(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)

	var done ui.ExportDoneMsg
	for _, msg := range collect(ta.send(keyMsg("P"))) {
		if d, ok := msg.(ui.ExportDoneMsg); ok {
			done = d
		}
	}
	if done.Err != nil {
		t.Fatalf("export failed: %v", done.Err)
	}
	if done.Entry.Scheduler != "astar" || done.Entry.Algorithm != "A*" {
		t.Errorf("unexpected entry %+v", done.Entry.Meta)
	}
	if len(done.Charts) != 2 {
		t.Errorf("charts = %v, want 2 images", done.Charts)
	}
	data, err := os.ReadFile(done.Entry.File(ingest.ExportFileName))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"makespan\": 9") {
		t.Errorf("export should be two-space indented JSON:\n%s", data)
	}

	entries, err := ta.store.List()
	if err != nil || len(entries) != 1 {
		t.Fatalf("store has %d entries, err %v", len(entries), err)
	}
}

func TestDiagnosticsTabRebindsCharts(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)
	before := ta.app.chart(present.SlotHeuristic)

	ta.send(keyMsg("3"))

	after := ta.app.chart(present.SlotHeuristic)
	if after == nil || after == before {
		t.Fatal("switching to the search tab should rebuild the chart")
	}
	if !before.Destroyed() {
		t.Error("previous chart should be destroyed")
	}
	if got := ta.backend.Live(); got != 3 {
		t.Errorf("live charts = %d, want 3", got)
	}
	if ta.app.diagView.Diagnostics() == nil {
		t.Error("diagnostics view should be bound")
	}
}

func TestDiagnosticsTabWithoutResult(t *testing.T) {
	ta := newTestApp(t)
	ta.send(keyMsg("3"))

	if ta.app.currentView != ViewDiagnostics {
		t.Fatalf("view = %v", ta.app.currentView)
	}
	if ta.backend.Live() != 0 {
		t.Error("no charts should exist before a result")
	}
}

func TestAlgorithmCycle(t *testing.T) {
	ta := newTestApp(t)
	first := ta.app.algorithm().ID
	ta.send(keyMsg("a"))

	if ta.app.algorithm().ID == first {
		t.Error("a should select the next algorithm")
	}
	for range len(ta.app.algorithms) - 1 {
		ta.send(keyMsg("a"))
	}
	if ta.app.algorithm().ID != first {
		t.Error("cycling should wrap around")
	}
}

func TestRegenerateKeepsShape(t *testing.T) {
	ta := newTestApp(t)
	before := ta.app.workload
	ta.send(keyMsg("r"))

	if len(ta.app.workload.Jobs) != len(before.Jobs) || ta.app.workload.NumMachines != before.NumMachines {
		t.Errorf("regenerated workload changed shape: %+v", ta.app.workload)
	}
	if err := ta.app.workload.Validate(); err != nil {
		t.Errorf("regenerated workload invalid: %v", err)
	}
}

func TestClearMatchingExportsAsksFirst(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)
	ta.run(ta.send(keyMsg("e")))
	ta.run(ta.send(keyMsg("4")))

	if n := len(ta.app.exportsView.Entries()); n != 1 {
		t.Fatalf("exports view has %d entries, want 1", n)
	}

	ta.send(keyMsg("x"))
	if !ta.app.cleanupForm.IsActive() {
		t.Fatal("x should open the cleanup form")
	}
	if f := ta.app.cleanupForm.Filter(); f.Scheduler != "astar" {
		t.Errorf("form should start on the current scheduler, got %+v", f)
	}
	ta.run(ta.send(keyMsg("a")))
	if !ta.app.confirmDialog.IsActive() {
		t.Fatal("applying the form should ask for confirmation")
	}
	ta.run(ta.send(keyMsg("y")))

	entries, err := ta.store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("store still has %d entries", len(entries))
	}
	if !strings.HasPrefix(ta.app.status, "Deleted 1") {
		t.Errorf("status = %q", ta.app.status)
	}
}

func TestEnterOpensExportPayload(t *testing.T) {
	ta := newTestApp(t)
	ta.submit(t)
	ta.run(ta.send(keyMsg("e")))
	ta.run(ta.send(keyMsg("4")))

	ta.run(ta.send(tea.KeyMsg{Type: tea.KeyEnter}))
	if ta.solver.calls != 1 {
		t.Errorf("enter on the exports tab should not submit, calls = %d", ta.solver.calls)
	}
	if !ta.app.payloadView.IsOpen() {
		t.Fatalf("payload viewer should open, status %q", ta.app.status)
	}
	if !strings.Contains(ta.app.View(), `"makespan": 9`) {
		t.Error("viewer should show the exported JSON")
	}

	ta.send(tea.KeyMsg{Type: tea.KeyEsc})
	if ta.app.payloadView.IsOpen() {
		t.Error("esc should close the viewer")
	}
}

func TestResponseWhileDialogOpenIsNotLost(t *testing.T) {
	ta := newTestApp(t)
	ta.run(ta.send(keyMsg("4")))
	cmd := ta.send(keyMsg("s"))

	ta.send(keyMsg("x"))
	if !ta.app.cleanupForm.IsActive() {
		t.Fatal("x should open the cleanup form")
	}
	for _, msg := range collect(cmd) {
		if done, ok := msg.(ui.ScheduleDoneMsg); ok {
			ta.send(done)
		}
	}
	if ta.app.loading {
		t.Error("the schedule response should be handled while the form is open")
	}
	if ta.app.ingestor.Snapshot() == nil {
		t.Error("snapshot should be set")
	}
}
