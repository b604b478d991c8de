// Package state owns the current sky snapshot and the view settings it is
// built from, with thread-safe access for the UI and the refresh loop.
package state

import (
	"errors"
	"sync"
	"time"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/logging"
	"github.com/litescript/ls-rigel/internal/metrics"
	"github.com/litescript/ls-rigel/internal/sky"
)

// EventType represents a body crossing the horizon.
type EventType string

const (
	EventRise EventType = "RISE"
	EventSet  EventType = "SET"
)

// Event records a body crossing the horizon between two updates.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"` // simulated time of the update that saw it
	Body      string    `json:"body"`
}

// Manager builds sky snapshots from its settings and keeps the latest one.
type Manager struct {
	mu sync.RWMutex

	// Inputs
	catalogue *sky.Catalogue
	where     astro.Geographic
	center    astro.Horizontal
	offset    time.Duration // simulated time minus wall-clock time
	now       func() time.Time

	// Current state
	current       *sky.ObservedSky
	lastBuild     time.Time
	lastError     error
	buildDuration time.Duration

	// Bodies above the horizon at the previous update, for event detection
	prevAbove map[string]bool

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
	metrics         *metrics.Collector
	log             *logging.Logger
}

// Config holds configuration for the state manager.
type Config struct {
	Catalogue       *sky.Catalogue
	Where           astro.Geographic
	Center          astro.Horizontal
	RefreshInterval time.Duration
	MaxEvents       int

	// Optional
	Metrics *metrics.Collector
	Logger  *logging.Logger
	Now     func() time.Time
}

// ErrNoCatalogue is returned by NewManager without a catalogue.
var ErrNoCatalogue = errors.New("state: catalogue required")

// NewManager creates a state manager. No snapshot exists until Update.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Catalogue == nil {
		return nil, ErrNoCatalogue
	}
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	refresh := cfg.RefreshInterval
	if refresh <= 0 {
		refresh = time.Second
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		catalogue:       cfg.Catalogue,
		where:           cfg.Where,
		center:          cfg.Center,
		now:             now,
		prevAbove:       make(map[string]bool),
		events:          make([]Event, 0, maxEvents),
		maxEvents:       maxEvents,
		refreshInterval: refresh,
		metrics:         cfg.Metrics,
		log:             log.With("state"),
	}, nil
}

// Update builds a fresh snapshot for the current simulated time.
func (m *Manager) Update() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	when := m.now().Add(m.offset)
	start := time.Now()
	s, err := sky.NewObservedSky(when, m.where, astro.NewStereographicProjection(m.center), m.catalogue)
	elapsed := time.Since(start)

	m.lastBuild = when
	m.lastError = err
	m.buildDuration = elapsed
	if err != nil {
		m.log.Error("building sky at %v: %v", when, err)
		return err
	}

	if m.metrics != nil {
		m.metrics.RecordBuild(elapsed, 2+len(s.Planets())+len(s.Stars()))
	}
	m.log.Debug("sky at %s built in %v", when.Format(time.RFC3339), elapsed)

	m.detectEvents(s)
	m.current = s
	return nil
}

// detectEvents compares which of the Sun, Moon and planets are above the
// horizon with the previous update. The first update only records state.
func (m *Manager) detectEvents(s *sky.ObservedSky) {
	first := m.current == nil
	above := make(map[string]bool)

	bodies := []sky.Object{s.Sun(), s.Moon()}
	for _, p := range s.Planets() {
		bodies = append(bodies, p)
	}
	for _, b := range bodies {
		up := s.Horizontal(b).Alt() > 0
		above[b.Name()] = up
		if first || up == m.prevAbove[b.Name()] {
			continue
		}
		e := Event{Type: EventSet, Timestamp: s.Time(), Body: b.Name()}
		if up {
			e.Type = EventRise
		}
		m.addEvent(e)
		m.log.Info("%s: %s", e.Type, e.Body)
	}
	m.prevAbove = above
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

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Sky           *sky.ObservedSky
	When          time.Time
	LastError     error
	BuildDuration time.Duration
	Offset        time.Duration
	Center        astro.Horizontal
	Events        []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Sky:           m.current,
		When:          m.lastBuild,
		LastError:     m.lastError,
		BuildDuration: m.buildDuration,
		Offset:        m.offset,
		Center:        m.center,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := m.getEventsOrdered()
	if n < len(events) {
		events = events[len(events)-n:]
	}
	return events
}

// Center returns the projection center used for the next update.
func (m *Manager) Center() astro.Horizontal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center
}

// SetCenter changes the projection center used for the next update.
func (m *Manager) SetCenter(h astro.Horizontal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = h
}

// Shift moves simulated time by d relative to the wall clock.
func (m *Manager) Shift(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset += d
}

// ResetTime makes simulated time follow the wall clock again.
func (m *Manager) ResetTime() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = 0
}

// Where returns the observer's location.
func (m *Manager) Where() astro.Geographic {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.where
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once a snapshot has been built.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
