package localstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-backoffice-client/internal/localstore"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]localstore.KV {
	t.Helper()

	fileKV, err := localstore.NewFileKV(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	sqliteKV, err := localstore.OpenSQLiteKV(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteKV.Close() })

	return map[string]localstore.KV{
		"memory": localstore.NewMemoryKV(),
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

func TestKVSetGetDelete(t *testing.T) {
	for name, kv := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := kv.Get("missing")
			require.False(t, ok)

			require.NoError(t, kv.Set("token", "abc"))
			value, ok := kv.Get("token")
			require.True(t, ok)
			require.Equal(t, "abc", value)

			require.NoError(t, kv.Set("token", "def"))
			value, _ = kv.Get("token")
			require.Equal(t, "def", value)

			require.NoError(t, kv.Delete("token"))
			_, ok = kv.Get("token")
			require.False(t, ok)

			// Deleting a missing key is a no-op.
			require.NoError(t, kv.Delete("token"))
		})
	}
}

func TestFileKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := localstore.NewFileKV(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("tenant", "acme"))

	second, err := localstore.NewFileKV(path)
	require.NoError(t, err)
	value, ok := second.Get("tenant")
	require.True(t, ok)
	require.Equal(t, "acme", value)
}

func TestFileKVCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	kv, err := localstore.NewFileKV(path)
	require.NoError(t, err)
	_, ok := kv.Get("tenant")
	require.False(t, ok)
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := localstore.OpenSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("token", "abc"))
	require.NoError(t, first.Close())

	second, err := localstore.OpenSQLiteKV(path)
	require.NoError(t, err)
	defer second.Close()

	value, ok := second.Get("token")
	require.True(t, ok)
	require.Equal(t, "abc", value)
}
