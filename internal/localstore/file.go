package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var _ KV = (*FileKV)(nil)

// FileKV persists slots as a single JSON object on disk. Writes go through a
// temp file followed by a rename so a crash never leaves a half-written
// state file behind.
type FileKV struct {
	mu    sync.Mutex
	path  string
	slots map[string]string
}

// NewFileKV opens or creates the state file at path. A missing file starts
// empty; an unreadable or corrupt file is treated as empty rather than
// failing, matching the recover-by-discard behaviour of the stores above it.
func NewFileKV(path string) (*FileKV, error) {
	if path == "" {
		return nil, errors.New("[NewFileKV] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileKV] os.MkdirAll")
	}

	kv := &FileKV{path: path, slots: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return kv, nil
	}
	if err := json.Unmarshal(raw, &kv.slots); err != nil {
		kv.slots = make(map[string]string)
	}
	return kv, nil
}

func (f *FileKV) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.slots[key]
	return value, ok
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.slots[key] = value
	return f.flush()
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.slots[key]; !ok {
		return nil
	}
	delete(f.slots, key)
	return f.flush()
}

// flush must be called with the mutex held.
func (f *FileKV) flush() error {
	raw, err := json.Marshal(f.slots)
	if err != nil {
		return errors.Wrap(err, "[FileKV.flush] json.Marshal")
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "[FileKV.flush] os.WriteFile")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(err, "[FileKV.flush] os.Rename")
	}
	return nil
}
