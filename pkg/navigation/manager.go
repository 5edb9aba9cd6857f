package navigation

import "sync"

// State is the outcome of resolving a navigation event.
// When Matched is false no view is selected and the outlet renders blank.
type State struct {
	Path    string `json:"path"`
	Route   Route  `json:"route"`
	Matched bool   `json:"matched"`
}

// Manager resolves navigation events through a Table and tracks history.
// Events are serialised, so a Manager can be shared between goroutines.
// Subscribers registered with OnChange run in event order and must not
// navigate from inside the callback.
type Manager struct {
	table *Table
	mode  HistoryMode

	notify sync.Mutex
	mu     sync.Mutex

	entries     []State
	cursor      int
	subscribers []func(State)
}

// NewManager creates a Manager over table using the given history mode.
// An empty mode defaults to HistoryWeb; any other unknown mode is an error.
func NewManager(table *Table, mode HistoryMode) (*Manager, error) {
	if mode == "" {
		mode = HistoryWeb
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		table:  table,
		mode:   mode,
		cursor: -1,
	}, nil
}

// Mode returns the history mode of the manager.
func (m *Manager) Mode() HistoryMode {
	return m.mode
}

// Table returns the route table the manager resolves against.
func (m *Manager) Table() *Table {
	return m.table
}

// Location extracts the routable path from a URL according to the history mode.
func (m *Manager) Location(rawURL string) (string, error) {
	return location(m.mode, rawURL)
}

// Resolve looks up path without recording a navigation.
func (m *Manager) Resolve(path string) State {
	route, ok := m.table.Resolve(path)
	return State{Path: path, Route: route, Matched: ok}
}

// Current returns the state at the history cursor.
// Before the first navigation it is an unmatched state with an empty path.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current()
}

// OnChange registers fn to be called after every state transition.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Navigate resolves path, pushes it onto history and discards any forward entries.
func (m *Manager) Navigate(path string) State {
	return m.transition(func() (State, bool) {
		s := m.Resolve(path)
		m.entries = append(m.entries[:m.cursor+1], s)
		m.cursor = len(m.entries) - 1
		return s, true
	})
}

// Replace resolves path and overwrites the current history entry.
// With an empty history it behaves like Navigate.
func (m *Manager) Replace(path string) State {
	return m.transition(func() (State, bool) {
		s := m.Resolve(path)
		if m.cursor < 0 {
			m.entries = append(m.entries, s)
			m.cursor = 0
		} else {
			m.entries[m.cursor] = s
		}
		return s, true
	})
}

// Back moves the cursor one entry back. It reports false at the start of history.
func (m *Manager) Back() (State, bool) {
	return m.step(-1)
}

// Forward moves the cursor one entry forward. It reports false at the end of history.
func (m *Manager) Forward() (State, bool) {
	return m.step(1)
}

// Len returns the number of history entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Manager) step(delta int) (State, bool) {
	var moved bool
	s := m.transition(func() (State, bool) {
		next := m.cursor + delta
		if next < 0 || next >= len(m.entries) {
			return m.current(), false
		}
		m.cursor = next
		moved = true
		return m.entries[next], true
	})
	return s, moved
}

func (m *Manager) transition(apply func() (State, bool)) State {
	m.notify.Lock()
	defer m.notify.Unlock()

	m.mu.Lock()
	s, changed := apply()
	subs := make([]func(State), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(s)
		}
	}
	return s
}

func (m *Manager) current() State {
	if m.cursor < 0 {
		return State{}
	}
	return m.entries[m.cursor]
}
