package present

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/altinukshini/schedviz/internal/model"
)

// PreferenceStore persists small string preferences.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Manager is the single owner of the theme, the chart slots and the latest
// result snapshot. It holds at most one live handle per slot.
type Manager struct {
	mu       sync.Mutex
	backend  Backend
	prefs    PreferenceStore
	logger   *slog.Logger
	theme    ThemeState
	slots    map[Slot]Handle
	snapshot *model.Snapshot
}

// NewManager loads the persisted theme, falling back to light when the
// store is missing, empty or failing.
func NewManager(ctx context.Context, backend Backend, prefs PreferenceStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Manager{
		backend: backend,
		prefs:   prefs,
		logger:  logger,
		theme:   NewThemeState(Light),
		slots:   make(map[Slot]Handle),
	}
	if prefs == nil {
		return m
	}
	v, ok, err := prefs.Get(ctx, PreferenceKey)
	if err != nil {
		logger.Warn("load theme preference", "error", err)
		return m
	}
	if ok {
		m.theme = NewThemeState(ParseTheme(v))
	}
	return m
}

func (m *Manager) Theme() ThemeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// ToggleTheme flips the theme, persists it and restyles every live chart.
// A persistence failure is logged and returned, but the new theme still
// takes effect for the session.
func (m *Manager) ToggleTheme(ctx context.Context) (ThemeState, error) {
	m.mu.Lock()
	next := m.theme.Toggle()
	m.theme = next
	for _, slot := range Slots {
		if h, ok := m.slots[slot]; ok {
			h.Restyle(OptionsFor(next, slot.Title()))
		}
	}
	m.mu.Unlock()

	if m.prefs == nil {
		return next, nil
	}
	if err := m.prefs.Set(ctx, PreferenceKey, string(next.Theme())); err != nil {
		m.logger.Warn("persist theme preference", "theme", next.Theme(), "error", err)
		return next, fmt.Errorf("persisting theme: %w", err)
	}
	m.logger.Debug("theme changed", "theme", next.Theme())
	return next, nil
}

// Replace destroys the slot's current handle, if any, before creating the
// new one. When creation fails the slot is left empty.
func (m *Manager) Replace(slot Slot, spec Spec) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.slots[slot]; ok {
		old.Destroy()
		delete(m.slots, slot)
	}

	spec.Slot = slot
	h, err := m.backend.Create(spec, OptionsFor(m.theme, slot.Title()))
	if err != nil {
		m.logger.Error("create chart", "slot", slot, "error", err)
		return nil, fmt.Errorf("creating %s chart: %w", slot, err)
	}
	m.slots[slot] = h
	return h, nil
}

// Handle returns the live handle for a slot.
func (m *Manager) Handle(slot Slot) (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.slots[slot]
	return h, ok
}

// Live reports how many slots hold a handle.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// SetSnapshot replaces the latest result. The snapshot is treated as
// immutable from here on.
func (m *Manager) SetSnapshot(s *model.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = s
}

func (m *Manager) Snapshot() *model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Close destroys every live handle.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, h := range m.slots {
		h.Destroy()
		delete(m.slots, slot)
	}
}
