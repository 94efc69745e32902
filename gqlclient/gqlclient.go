// Package gqlclient builds tenant-scoped GraphQL clients. Construction is
// cheap and happens on every tenant view mount: the active tenant is
// captured when the client is built, so navigating to another tenant means
// building another client, never re-pointing an existing one. The bearer
// credential, by contrast, is read from the store on every call.
package gqlclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-backoffice-client/credentials"
	"github.com/jrsteele09/go-backoffice-client/tenant"
	"github.com/machinebox/graphql"
	"github.com/pkg/errors"
)

const (
	headerAuthorization = "Authorization"
	headerTenantID      = "X-Tenant-ID"

	bearerPrefix = "Bearer "
)

// Factory builds per-tenant clients against one GraphQL endpoint.
type Factory struct {
	url     string
	creds   credentials.Store
	tenants tenant.Store
	http    *http.Client
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithHTTPClient sets the transport used by built clients. Pass the gateway
// client's NewHTTPClient result to get the same unauthorized-teardown
// behaviour on the GraphQL surface as on request/response calls.
func WithHTTPClient(hc *http.Client) FactoryOption {
	return func(f *Factory) { f.http = hc }
}

// NewFactory creates a Factory for the given endpoint and stores.
func NewFactory(url string, creds credentials.Store, tenants tenant.Store, options ...FactoryOption) (*Factory, error) {
	if url == "" {
		return nil, errors.New("[gqlclient.NewFactory] url is required")
	}
	if creds == nil {
		return nil, errors.New("[gqlclient.NewFactory] credential store is required")
	}
	if tenants == nil {
		return nil, errors.New("[gqlclient.NewFactory] tenant store is required")
	}

	f := &Factory{url: url, creds: creds, tenants: tenants}
	for _, opt := range options {
		opt(f)
	}
	return f, nil
}

// New builds a client bound to the tenant currently held by the tenant
// store.
func (f *Factory) New() *Client {
	var opts []graphql.ClientOption
	if f.http != nil {
		opts = append(opts, graphql.WithHTTPClient(f.http))
	}
	return &Client{
		gql:      graphql.NewClient(f.url, opts...),
		tenantID: f.tenants.GetTenantID(),
		creds:    f.creds,
	}
}

// Client executes GraphQL operations scoped to one tenant.
type Client struct {
	gql      *graphql.Client
	tenantID string
	creds    credentials.Store
}

// TenantID returns the tenant this client was built for.
func (c *Client) TenantID() string {
	return c.tenantID
}

// Run executes query with the given variables and decodes the response data
// into out.
func (c *Client) Run(ctx context.Context, query string, vars map[string]any, out any) error {
	req := graphql.NewRequest(query)
	for key, value := range vars {
		req.Var(key, value)
	}

	if token := c.creds.GetToken(); token != "" {
		req.Header.Set(headerAuthorization, bearerPrefix+token)
	}
	if c.tenantID != "" {
		req.Header.Set(headerTenantID, c.tenantID)
	}

	if err := c.gql.Run(ctx, req, out); err != nil {
		return errors.Wrap(err, "[gqlclient.Run] execute query")
	}
	return nil
}
