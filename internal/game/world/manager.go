package world

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrLocked is returned when travelling to a location the chapter has not unlocked.
var ErrLocked = errors.New("location locked")

// Manager provides thread-safe access to the loaded locations.
type Manager struct {
	mu    sync.RWMutex
	byID  map[int]*Location
	order []*Location
	start int
}

// NewManager creates a Manager from the given locations.
//
// Precondition: locs must be non-empty and start must be one of their IDs.
// Postcondition: Returns a Manager with locations ordered by ID, or an error on duplicate IDs.
func NewManager(locs []*Location, start int) (*Manager, error) {
	m := &Manager{byID: make(map[int]*Location, len(locs)), start: start}
	for _, l := range locs {
		if _, exists := m.byID[l.ID]; exists {
			return nil, fmt.Errorf("duplicate location ID: %d", l.ID)
		}
		m.byID[l.ID] = l
		m.order = append(m.order, l)
	}
	if _, ok := m.byID[start]; !ok {
		return nil, fmt.Errorf("start location %d not defined", start)
	}
	sort.Slice(m.order, func(i, j int) bool { return m.order[i].ID < m.order[j].ID })
	return m, nil
}

// Location returns the location with the given ID.
//
// Postcondition: Returns (loc, true) if found, or (nil, false) otherwise.
func (m *Manager) Location(id int) (*Location, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.byID[id]
	return l, ok
}

// Start returns the location a new game begins at.
func (m *Manager) Start() *Location {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byID[m.start]
}

// All returns every location ordered by ID.
func (m *Manager) All() []*Location {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Location, len(m.order))
	copy(out, m.order)
	return out
}

// Unlocked returns the locations reachable at chapter, ordered by ID.
func (m *Manager) Unlocked(chapter int) []*Location {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Location
	for _, l := range m.order {
		if l.Unlocked(chapter) {
			out = append(out, l)
		}
	}
	return out
}

// Travel resolves a move to the location with the given ID at chapter.
//
// Postcondition: Returns ErrLocked (wrapped) when the chapter gate is not met.
func (m *Manager) Travel(id, chapter int) (*Location, error) {
	l, ok := m.Location(id)
	if !ok {
		return nil, fmt.Errorf("unknown location %d", id)
	}
	if !l.Unlocked(chapter) {
		return nil, fmt.Errorf("%w: %s requires chapter %d", ErrLocked, l.Name, l.RequiredChapter)
	}
	return l, nil
}
