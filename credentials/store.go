package credentials

import (
	"encoding/json"
	"sync"

	"github.com/jrsteele09/go-backoffice-client/internal/localstore"
)

// Durable slot keys. Stable across the process lifetime; changing them
// orphans previously stored credentials.
const (
	tokenKey = "access_token"
	userKey  = "user_info"
)

var _ Store = (*KVStore)(nil)

// KVStore implements Store over a localstore.KV. The store-level mutex makes
// multi-slot operations (ClearAll) atomic as observed by other callers.
type KVStore struct {
	mu sync.Mutex
	kv localstore.KV
}

// NewKVStore wraps kv as a credential store.
func NewKVStore(kv localstore.KV) *KVStore {
	return &KVStore{kv: kv}
}

func (s *KVStore) GetToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, _ := s.kv.Get(tokenKey)
	return token
}

// SetToken stores the token. An empty token is a no-op so a real credential
// is never overwritten by a blank one.
func (s *KVStore) SetToken(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.kv.Set(tokenKey, token)
}

func (s *KVStore) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.kv.Delete(tokenKey)
}

// GetUser returns the stored profile, or nil when the slot is empty or holds
// a value that no longer parses.
func (s *KVStore) GetUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.kv.Get(userKey)
	if !ok || raw == "" {
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// SetUser stores the profile. A nil user is a no-op.
func (s *KVStore) SetUser(user *User) {
	if user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.kv.Set(userKey, string(raw))
}

func (s *KVStore) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.kv.Delete(userKey)
}

func (s *KVStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.kv.Delete(tokenKey)
	_ = s.kv.Delete(userKey)
}
