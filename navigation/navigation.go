// Package navigation abstracts the host application's notion of "where the
// user currently is". The call gateway uses it for the forced redirect to the
// login destination, and the tenant context derives the active tenant from
// the current path. Embedders plug in whatever drives their screens; Memory
// serves tests and headless tooling.
package navigation

import "sync"

// Navigator exposes the current location and lets callers move it.
type Navigator interface {
	Location() string
	Navigate(path string)
}

// Watcher is implemented by navigators that can report location changes.
type Watcher interface {
	Watch(fn func(path string))
}

var (
	_ Navigator = (*Memory)(nil)
	_ Watcher   = (*Memory)(nil)
)

// Memory is an in-process Navigator that tracks a single path and notifies
// watchers on every change.
type Memory struct {
	mu       sync.Mutex
	path     string
	watchers []func(string)
}

// NewMemory creates a Memory navigator positioned at path.
func NewMemory(path string) *Memory {
	return &Memory{path: path}
}

func (m *Memory) Location() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

func (m *Memory) Navigate(path string) {
	m.mu.Lock()
	m.path = path
	watchers := make([]func(string), len(m.watchers))
	copy(watchers, m.watchers)
	m.mu.Unlock()

	// Watchers run outside the lock so they may re-enter the navigator.
	for _, fn := range watchers {
		fn(path)
	}
}

func (m *Memory) Watch(fn func(path string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}
