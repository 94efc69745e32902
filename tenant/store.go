// Package tenant tracks which tenant the current tenant-scoped view belongs
// to. The identifier comes from the navigation path (`/t/{tenantID}/...`),
// is persisted so freshly built query clients can pick it up, and is treated
// as authoritative over whatever was persisted before.
package tenant

import (
	"sync"

	"github.com/jrsteele09/go-backoffice-client/internal/localstore"
)

// Durable slot key for the active tenant identifier.
const tenantKey = "x_tenant_id"

// Store persists the active tenant identifier.
type Store interface {
	GetTenantID() string
	// SetTenantID is a no-op for an empty id; a real tenant is never
	// overwritten with a blank one.
	SetTenantID(id string)
	ClearTenantID()
}

var _ Store = (*KVStore)(nil)

// KVStore implements Store over a localstore.KV.
type KVStore struct {
	mu sync.Mutex
	kv localstore.KV
}

// NewKVStore wraps kv as a tenant store.
func NewKVStore(kv localstore.KV) *KVStore {
	return &KVStore{kv: kv}
}

func (s *KVStore) GetTenantID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := s.kv.Get(tenantKey)
	return id
}

func (s *KVStore) SetTenantID(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.kv.Set(tenantKey, id)
}

func (s *KVStore) ClearTenantID() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.kv.Delete(tenantKey)
}
