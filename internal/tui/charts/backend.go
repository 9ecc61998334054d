// Package charts is the terminal chart backend: each handle keeps the data
// and theme options it was created with and draws itself as text.
package charts

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/timeline"
	"github.com/altinukshini/schedviz/internal/ui"
)

var ErrDestroyed = errors.New("chart destroyed")

type Backend struct {
	mu     sync.Mutex
	live   map[*Chart]struct{}
	logger *slog.Logger
}

func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{live: make(map[*Chart]struct{}), logger: logger}
}

func (b *Backend) Create(spec present.Spec, opts present.Options) (present.Handle, error) {
	switch spec.Slot {
	case present.SlotTimeline, present.SlotHeuristic, present.SlotExploration:
	default:
		return nil, fmt.Errorf("unknown chart slot %d", spec.Slot)
	}
	c := &Chart{spec: spec, opts: opts, backend: b}
	b.mu.Lock()
	b.live[c] = struct{}{}
	b.mu.Unlock()
	b.logger.Debug("chart created", "slot", spec.Slot, "dark", opts.Dark)
	return c, nil
}

// Live reports how many charts have been created and not destroyed.
func (b *Backend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

func (b *Backend) release(c *Chart) {
	b.mu.Lock()
	delete(b.live, c)
	b.mu.Unlock()
}

// Chart is a live terminal chart. Its data never changes after creation.
type Chart struct {
	mu        sync.Mutex
	spec      present.Spec
	opts      present.Options
	destroyed bool
	backend   *Backend
}

func (c *Chart) Spec() present.Spec {
	return c.spec
}

func (c *Chart) Options() present.Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

func (c *Chart) Restyle(opts present.Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.destroyed {
		c.opts = opts
	}
}

func (c *Chart) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.mu.Unlock()
	c.backend.release(c)
}

func (c *Chart) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// View draws the chart at a given width. xOffset and selected only apply to
// the timeline.
func (c *Chart) View(width, xOffset, selected int) (string, error) {
	if c.Destroyed() {
		return "", ErrDestroyed
	}
	opts := c.Options()
	switch c.spec.Slot {
	case present.SlotTimeline:
		return timeline.Render(c.spec.Timeline, timeline.RenderOptions{
			Width:    width,
			XOffset:  xOffset,
			Selected: selected,
			Colors:   ui.TimelineColors(opts),
		}), nil
	case present.SlotHeuristic:
		return diagnostics.RenderHeuristic(c.spec.Heuristic, width, ui.ChartColors(opts)), nil
	default:
		return diagnostics.RenderExploration(c.spec.Exploration, width, ui.ChartColors(opts)), nil
	}
}
