// Package config loads client configuration from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds the endpoints and paths the client is wired against.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"backoffice"`

	// AdminAPIURL is the request/response API the gateway targets.
	AdminAPIURL string `env:"ADMIN_API_URL" envDefault:"http://localhost:8080/api"`

	// GatewayAPIURL fronts the auth service (Google login entry point).
	GatewayAPIURL string `env:"GW_API_URL" envDefault:"http://localhost:8081"`

	// TenantGraphQLURL is the tenant-scoped query endpoint.
	TenantGraphQLURL string `env:"TENANT_GQL_URL" envDefault:"http://localhost:8082/graphql"`

	// LoginPath is where the user lands after logout or credential
	// rejection.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/auth/login"`

	// RequestTimeout bounds every outbound call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"20s"`

	// DataFolder holds the durable credential and tenant state.
	DataFolder string `env:"DATA_FOLDER" envDefault:".backoffice"`

	// StoreBackend selects the durable store implementation: "file" or
	// "sqlite".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
}

// Load parses the environment into a Config, applying defaults for unset
// variables.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, errors.Wrap(err, "[config.Load] env.Parse")
	}
	return c, nil
}
