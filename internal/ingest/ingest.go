// Package ingest decodes solver payloads, records the latest snapshot and
// drives chart replacement for every slot.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/model"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/timeline"
)

// ExportFileName is the file name used for exported results.
const ExportFileName = "schedule_results.json"

// NoDataMessage is shown when an export is requested before any result.
const NoDataMessage = "No scheduling data available to download"

var ErrNoSnapshot = errors.New("no scheduling data available to download")

// Rendered is what one ingestion produced.
type Rendered struct {
	Snapshot    *model.Snapshot
	Layout      timeline.Layout
	Diagnostics diagnostics.Diagnostics
}

type Ingestor struct {
	manager *present.Manager
	logger  *slog.Logger
	now     func() time.Time
}

func New(manager *present.Manager, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ingestor{manager: manager, logger: logger, now: time.Now}
}

// Ingest decodes a payload and, on success, makes it the latest snapshot and
// replaces all three charts. A payload that fails to decode leaves the
// previous snapshot and charts untouched.
func (i *Ingestor) Ingest(raw []byte) (Rendered, error) {
	var result model.ScheduleResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return Rendered{}, fmt.Errorf("decoding schedule result: %w", err)
	}

	snap := &model.Snapshot{
		Result:     result,
		Raw:        bytes.Clone(raw),
		ReceivedAt: i.now(),
	}
	i.manager.SetSnapshot(snap)
	i.logger.Info("schedule ingested",
		"jobs", result.NumJobs,
		"machines", result.NumMachines,
		"makespan", result.Makespan,
		"algorithm", snap.Algorithm())

	out := Rendered{
		Snapshot:    snap,
		Layout:      timeline.BuildResult(result),
		Diagnostics: diagnostics.Bind(result.Visualization),
	}
	_, terr := i.manager.Replace(present.SlotTimeline, present.TimelineSpec(out.Layout))
	return out, errors.Join(terr, i.replaceDiagnostics(out.Diagnostics))
}

// Rebind rebuilds the diagnostics charts from the current snapshot without
// a new request.
func (i *Ingestor) Rebind() (diagnostics.Diagnostics, error) {
	snap := i.manager.Snapshot()
	if snap == nil {
		return diagnostics.Diagnostics{}, ErrNoSnapshot
	}
	d := diagnostics.Bind(snap.Result.Visualization)
	return d, i.replaceDiagnostics(d)
}

func (i *Ingestor) replaceDiagnostics(d diagnostics.Diagnostics) error {
	_, herr := i.manager.Replace(present.SlotHeuristic, present.HeuristicSpec(d.Heuristic))
	_, eerr := i.manager.Replace(present.SlotExploration, present.ExplorationSpec(d.Exploration))
	return errors.Join(herr, eerr)
}

func (i *Ingestor) Snapshot() *model.Snapshot {
	return i.manager.Snapshot()
}

// Export writes the latest snapshot as indented JSON.
func (i *Ingestor) Export(w io.Writer) error {
	return WriteSnapshot(w, i.manager.Snapshot())
}

// WriteSnapshot re-indents the snapshot's original payload with two spaces,
// so the output carries every field the solver sent.
func WriteSnapshot(w io.Writer, snap *model.Snapshot) error {
	if snap == nil {
		return ErrNoSnapshot
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, snap.Raw, "", "  "); err != nil {
		return fmt.Errorf("formatting snapshot: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
