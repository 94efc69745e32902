// Package gateway is the single chokepoint for request/response-style calls
// to the back-office API. It injects the stored bearer credential, attaches
// a request ID for log correlation, normalizes failures, and tears the
// session down globally when the server rejects the credential.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-backoffice-client/credentials"
	"github.com/jrsteele09/go-backoffice-client/navigation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout bounds every call made through the gateway.
	DefaultTimeout = 20 * time.Second

	// DefaultLoginPath is where an unauthorized caller is sent.
	DefaultLoginPath = "/auth/login"

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"

	bearerPrefix    = "Bearer "
	contentTypeJSON = "application/json"
)

// Client is the outbound call gateway. Stateless per call apart from the
// shared credential store read; concurrent calls do not block one another.
type Client struct {
	baseURL   string
	http      *http.Client
	creds     credentials.Store
	nav       navigation.Navigator
	loginPath string
	onUnauth  func()
	logger    zerolog.Logger

	// teardownMu serializes clear-then-redirect so racing 401s observe a
	// single atomic transition.
	teardownMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTransport replaces the underlying transport (primarily for testing).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport.(*authTransport).base = rt }
}

// WithLoginPath overrides the login destination used on teardown.
func WithLoginPath(path string) Option {
	return func(c *Client) { c.loginPath = path }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUnauthorizedHook registers a callback fired after the credential store
// is cleared on an unauthorized response. The session context hooks in here
// so its observers learn about the forced teardown.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauth = fn }
}

// New creates a gateway client for baseURL.
func New(baseURL string, creds credentials.Store, nav navigation.Navigator, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[gateway.New] baseURL is required")
	}
	if creds == nil {
		return nil, errors.New("[gateway.New] credential store is required")
	}
	if nav == nil {
		return nil, errors.New("[gateway.New] navigator is required")
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		creds:     creds,
		nav:       nav,
		loginPath: DefaultLoginPath,
		logger:    zerolog.Nop(),
	}
	c.http = &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &authTransport{base: http.DefaultTransport, gw: c},
	}

	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Get performs a GET call and decodes the JSON response into out when out is
// non-nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST call with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT call with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE call.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do performs a call. On success the response body is decoded into out when
// out is non-nil. Failures come back as *Error; the raw transport error is
// never propagated.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return normalize(0, nil, errors.Wrap(err, "[gateway.Do] json.Marshal"))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return normalize(0, nil, errors.Wrap(err, "[gateway.Do] http.NewRequestWithContext"))
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerRequestID, uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("transport failure")
		return normalize(0, nil, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		// The 401 teardown already ran inside the transport.
		c.logger.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("call rejected")
		return normalize(resp.StatusCode, raw, nil)
	}
	if readErr != nil {
		return normalize(0, nil, readErr)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return normalize(0, raw, errors.Wrap(err, "[gateway.Do] decode response"))
		}
	}
	return nil
}

// teardown clears the credential store and redirects to the login
// destination. Clearing is idempotent and the redirect is skipped when the
// user is already there; the location is read at fire time, not at
// call-initiation time.
func (c *Client) teardown() {
	c.teardownMu.Lock()
	defer c.teardownMu.Unlock()

	c.creds.ClearAll()
	if c.onUnauth != nil {
		c.onUnauth()
	}
	if c.nav.Location() != c.loginPath {
		c.logger.Info().Str("destination", c.loginPath).Msg("credential rejected, redirecting to login")
		c.nav.Navigate(c.loginPath)
	}
}
