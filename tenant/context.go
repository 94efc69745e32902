package tenant

import (
	"strings"
	"sync"

	"github.com/jrsteele09/go-backoffice-client/navigation"
	"github.com/pkg/errors"
)

// pathPrefix marks tenant-scoped locations: /t/{tenantID}/...
const pathPrefix = "/t/"

// Context resolves the active tenant from the navigation location and
// persists every change to the Store. It is scoped to a tenant view: create
// one when entering the tenant subtree, drop it when leaving. Once resolved
// it never reverts to unresolved; a location outside the tenant subtree
// simply leaves the last resolved identifier in place.
type Context struct {
	mu       sync.Mutex
	nav      navigation.Navigator
	store    Store
	tenantID string
}

// NewContext builds a Context, resolves the tenant from the navigator's
// current location, and, when the navigator reports location changes,
// re-resolves on every change.
func NewContext(nav navigation.Navigator, store Store) (*Context, error) {
	if nav == nil {
		return nil, errors.New("[tenant.NewContext] navigator is required")
	}
	if store == nil {
		return nil, errors.New("[tenant.NewContext] store is required")
	}

	c := &Context{nav: nav, store: store}
	c.resolve(nav.Location())

	if watcher, ok := nav.(navigation.Watcher); ok {
		watcher.Watch(c.resolve)
	}
	return c, nil
}

// TenantID returns the currently resolved tenant identifier, or "" while
// unresolved.
func (c *Context) TenantID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tenantID
}

// Refresh re-reads the navigator location. Only needed with navigators that
// cannot report changes themselves.
func (c *Context) Refresh() {
	c.resolve(c.nav.Location())
}

func (c *Context) resolve(path string) {
	id := FromPath(path)
	if id == "" {
		return
	}

	c.mu.Lock()
	changed := id != c.tenantID
	c.tenantID = id
	c.mu.Unlock()

	if changed {
		c.store.SetTenantID(id)
	}
}

// FromPath extracts the tenant identifier from a tenant-scoped path.
// Returns "" for locations outside the tenant subtree.
func FromPath(path string) string {
	if !strings.HasPrefix(path, pathPrefix) {
		return ""
	}
	rest := path[len(pathPrefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
