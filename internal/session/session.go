// Package session provides thread-safe ownership of the loaded catalog,
// the constellation overlays and the scene they draw into.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/logging"
	"github.com/Ricardo08S/StarrySky-4/internal/metrics"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// EventType represents the type of session event.
type EventType string

const (
	EventShown        EventType = "SHOWN"
	EventHidden       EventType = "HIDDEN"
	EventMissingEntry EventType = "MISSING_ENTRY"
	EventInvalidIndex EventType = "INVALID_INDEX"
	EventReloaded     EventType = "RELOADED"
	EventResized      EventType = "RESIZED"
)

// Event represents a change in the session.
type Event struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	Index         int       `json:"index,omitempty"`
	Constellation string    `json:"constellation,omitempty"`
	Detail        string    `json:"detail,omitempty"`
}

// Config holds configuration for the session manager.
type Config struct {
	MaxEvents int
	Field     constellation.Field
	LineInset float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50,
		Field:     constellation.DefaultField(),
		LineInset: constellation.DefaultLineInset,
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithMetrics records loads and toggles.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// WithControllerOptions passes options through to the overlay controller.
func WithControllerOptions(opts ...constellation.ControllerOption) Option {
	return func(m *Manager) {
		m.ctrlOpts = append(m.ctrlOpts, opts...)
	}
}

// Manager serializes every mutation of the catalog index, the overlay
// state and the renderer.
type Manager struct {
	mu sync.RWMutex

	// Current catalog
	index    *catalog.Index
	format   string
	skipped  int
	loadedAt time.Time
	loads    int

	field      constellation.Field
	registry   *constellation.Registry
	controller *constellation.Controller
	renderer   constellation.Renderer

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	logger   *logging.Logger
	metrics  *metrics.Metrics
	ctrlOpts []constellation.ControllerOption
}

// NewManager creates a session over a constellation registry and a
// renderer. The catalog is empty until Reload.
func NewManager(cfg Config, reg *constellation.Registry, r constellation.Renderer, opts ...Option) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	m := &Manager{
		index:     catalog.NewIndex(nil),
		field:     cfg.Field,
		registry:  reg,
		renderer:  r,
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	ctrlOpts := append([]constellation.ControllerOption{
		constellation.WithField(cfg.Field),
		constellation.WithLineInset(cfg.LineInset),
	}, m.ctrlOpts...)
	m.controller = constellation.NewController(reg, m.index, r, ctrlOpts...)
	return m
}

// Reload replaces the catalog. Visible overlays are hidden against the old
// index, the scene is rebuilt from the new stars, and the same overlays
// are shown again so every catalog number maps to the new stars.
// Renderer failures are returned but do not stop the reload.
func (m *Manager) Reload(res *catalog.Result) []error {
	if res == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	visible := m.registry.Visible()
	for _, i := range visible {
		r, err := m.controller.Hide(i)
		errs = append(errs, r.Failed...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if err := m.renderer.Clear(); err != nil {
		errs = append(errs, fmt.Errorf("clear scene: %w", err))
	}

	m.index = catalog.NewIndex(res.Stars)
	m.format = res.Format
	m.skipped = res.Skipped
	m.loadedAt = time.Now()
	m.controller.SetStars(m.index)

	errs = append(errs, m.field.Place(m.renderer, res.Stars)...)

	for _, i := range visible {
		r, err := m.controller.Show(i)
		errs = append(errs, r.Failed...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	m.metrics.ObserveLoad(res, m.loads > 0)
	m.loads++

	m.addEvent(Event{
		Type:      EventReloaded,
		Timestamp: m.loadedAt,
		Detail:    fmt.Sprintf("%d stars, %d skipped", m.index.Len(), res.Skipped),
	})
	m.logger.Info("catalog loaded: %d stars (%d skipped, format %s)", m.index.Len(), res.Skipped, res.Format)
	if len(errs) > 0 {
		m.logger.Warn("catalog reload: %d render errors", len(errs))
	}
	return errs
}

// Toggle flips a constellation overlay.
func (m *Manager) Toggle(i int) (constellation.ToggleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	res, err := m.controller.Toggle(i)
	if err != nil {
		if errors.Is(err, constellation.ErrInvalidConstellationIndex) {
			m.addEvent(Event{Type: EventInvalidIndex, Timestamp: now, Index: i})
		}
		m.logger.Warn("toggle %d: %v", i, err)
		return res, err
	}

	m.metrics.ObserveToggle(res)

	typ := EventHidden
	if res.Visible {
		typ = EventShown
	}
	m.addEvent(Event{
		Type:          typ,
		Timestamp:     now,
		Index:         i,
		Constellation: res.Name,
		Detail:        fmt.Sprintf("%d lines", res.Lines),
	})
	if len(res.Missing) > 0 {
		m.addEvent(Event{
			Type:          EventMissingEntry,
			Timestamp:     now,
			Index:         i,
			Constellation: res.Name,
			Detail:        errors.Join(res.Missing...).Error(),
		})
		m.logger.Debug("toggle %s: %d missing catalog entries", res.Name, len(res.Missing))
	}
	for _, f := range res.Failed {
		m.logger.Warn("toggle %s: %v", res.Name, f)
	}
	return res, nil
}

// RebuildVisualSizes changes the display size bounds and resizes every star.
func (m *Manager) RebuildVisualSizes(minSize, maxSize float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs, err := m.field.RebuildVisualSizes(m.renderer, m.index.All(), minSize, maxSize)
	if err != nil {
		return err
	}
	m.controller.SetField(m.field)

	m.addEvent(Event{
		Type:      EventResized,
		Timestamp: time.Now(),
		Detail:    fmt.Sprintf("%g..%g", minSize, maxSize),
	})
	if len(errs) > 0 {
		m.logger.Warn("resize: %d render errors", len(errs))
		return errors.Join(errs...)
	}
	return nil
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// ConstellationStatus is the queryable state of one constellation.
type ConstellationStatus struct {
	Index           int                  `json:"index"`
	Name            string               `json:"name"`
	Visible         bool                 `json:"visible"`
	Handle          constellation.Handle `json:"handle,omitempty"`
	Vertices        int                  `json:"vertices"`
	Edges           int                  `json:"edges"`
	VisibleVertices []int                `json:"visible_vertices,omitempty"`
}

// Constellation returns the status of constellation i.
func (m *Manager) Constellation(i int) (ConstellationStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, err := m.registry.At(i)
	if err != nil {
		return ConstellationStatus{}, err
	}
	return m.status(i, c), nil
}

// Constellations returns the status of every constellation in index order.
func (m *Manager) Constellations() []ConstellationStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.registry.All()
	out := make([]ConstellationStatus, len(all))
	for i, c := range all {
		out[i] = m.status(i, c)
	}
	return out
}

func (m *Manager) status(i int, c constellation.Constellation) ConstellationStatus {
	h, _ := m.registry.Handle(i)
	return ConstellationStatus{
		Index:           i,
		Name:            c.Name,
		Visible:         m.controller.IsVisible(i),
		Handle:          h,
		Vertices:        len(c.Vertices),
		Edges:           len(c.Edges),
		VisibleVertices: m.controller.VisibleVertexCatalogNumbers(i),
	}
}

// Star looks up a star in the current catalog.
func (m *Manager) Star(hr int) (star.Star, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.ByCatalogNumber(hr)
}

// Stars returns a page of the current catalog in load order.
func (m *Manager) Stars(offset, limit int) []star.Star {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.Slice(offset, limit)
}

// VisibleStars returns the vertex stars of all visible constellations.
func (m *Manager) VisibleStars() []star.Star {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.controller.VisibleStars()
}

// Field returns the current field geometry.
func (m *Manager) Field() constellation.Field {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.field
}

// HasData returns true once a catalog with at least one star is loaded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.Len() > 0
}

// Snapshot represents an immutable snapshot of session state.
type Snapshot struct {
	Format   string              `json:"format"`
	Stars    int                 `json:"stars"`
	Skipped  int                 `json:"skipped"`
	LoadedAt time.Time           `json:"loaded_at"`
	Loads    int                 `json:"loads"`
	Visible  []int               `json:"visible"`
	Field    constellation.Field `json:"field"`
	Events   []Event             `json:"events"`
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Format:   m.format,
		Stars:    m.index.Len(),
		Skipped:  m.skipped,
		LoadedAt: m.loadedAt,
		Loads:    m.loads,
		Visible:  m.registry.Visible(),
		Field:    m.field,
		Events:   m.getEventsOrdered(),
	}
}
