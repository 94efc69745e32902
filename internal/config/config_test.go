package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-backoffice-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "backoffice", c.AppName)
	require.Equal(t, "/auth/login", c.LoginPath)
	require.Equal(t, 20*time.Second, c.RequestTimeout)
	require.NotEmpty(t, c.AdminAPIURL)
	require.NotEmpty(t, c.TenantGraphQLURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADMIN_API_URL", "https://admin.example.com/api")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOGIN_PATH", "/signin")

	c, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "https://admin.example.com/api", c.AdminAPIURL)
	require.Equal(t, 5*time.Second, c.RequestTimeout)
	require.Equal(t, "/signin", c.LoginPath)
}
