package navigation_test

import (
	"testing"

	"github.com/jrsteele09/go-backoffice-client/navigation"
	"github.com/stretchr/testify/require"
)

func TestMemoryNavigateUpdatesLocation(t *testing.T) {
	nav := navigation.NewMemory("/")
	require.Equal(t, "/", nav.Location())

	nav.Navigate("/t/acme")
	require.Equal(t, "/t/acme", nav.Location())
}

func TestMemoryWatchersSeeEveryChange(t *testing.T) {
	nav := navigation.NewMemory("/")

	var seen []string
	nav.Watch(func(path string) { seen = append(seen, path) })

	nav.Navigate("/t/acme")
	nav.Navigate("/auth/login")

	require.Equal(t, []string{"/t/acme", "/auth/login"}, seen)
}
