package session

import (
	"sync"

	"github.com/jrsteele09/go-backoffice-client/credentials"
	"github.com/pkg/errors"
)

// Context is the single writer of session state. It loads the initial
// session from the credential store, persists every replacement back to it,
// and notifies observers on each transition (login, logout, forced
// teardown). Reads and writes are safe from any goroutine.
type Context struct {
	mu        sync.Mutex
	store     credentials.Store
	current   Session
	observers []func(Session)
}

// NewContext creates a Context seeded from the credential store.
func NewContext(store credentials.Store) (*Context, error) {
	if store == nil {
		return nil, errors.New("[session.NewContext] store is required")
	}
	return &Context{
		store:   store,
		current: Load(store),
	}, nil
}

// Current returns the live session.
func (c *Context) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set replaces the session wholesale. The credential store is written before
// observers see the new session, so a reader notified of a login always
// finds the token already persisted.
func (c *Context) Set(s Session) {
	c.mu.Lock()
	c.store.SetToken(s.Token)
	c.store.SetUser(s.User)
	c.current = s
	observers := c.snapshotObservers()
	c.mu.Unlock()

	notify(observers, s)
}

// Logout clears the in-memory session and the credential store.
func (c *Context) Logout() {
	c.clear()
}

// Invalidate is the forced-teardown entry point used when an outbound call
// is rejected as unauthorized. Idempotent; observers are notified on every
// invocation so screens re-render even if the store was already empty.
func (c *Context) Invalidate() {
	c.clear()
}

// Subscribe registers an observer for session transitions. Observers run
// synchronously on the mutating goroutine, outside the context lock.
func (c *Context) Subscribe(fn func(Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Context) clear() {
	c.mu.Lock()
	c.store.ClearAll()
	c.current = Session{}
	observers := c.snapshotObservers()
	c.mu.Unlock()

	notify(observers, Session{})
}

// snapshotObservers must be called with the mutex held.
func (c *Context) snapshotObservers() []func(Session) {
	observers := make([]func(Session), len(c.observers))
	copy(observers, c.observers)
	return observers
}

func notify(observers []func(Session), s Session) {
	for _, fn := range observers {
		fn(s)
	}
}
