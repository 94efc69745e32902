// Package authclient drives the login, register, and logout flows against
// the back-office auth endpoints. Session establishment is a postcondition
// of a successful login or register: by the time a call returns without
// error, the credential store and session context already hold the new
// identity.
package authclient

import (
	"context"

	"github.com/jrsteele09/go-backoffice-client/credentials"
	"github.com/jrsteele09/go-backoffice-client/gateway"
	"github.com/jrsteele09/go-backoffice-client/navigation"
	"github.com/jrsteele09/go-backoffice-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	loginPath    = "/auth/v1/login"
	registerPath = "/auth/v1/register"
)

// Credentials is the login/register request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// LoginResponse is the auth backend's success body.
type LoginResponse struct {
	JWTToken string            `json:"jwtToken"`
	UserInfo *credentials.User `json:"userInfo"`
}

// Client performs the auth flows.
type Client struct {
	gw        *gateway.Client
	sessions  *session.Context
	nav       navigation.Navigator
	loginDest string
	logger    zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLoginDestination overrides the path Logout navigates to.
func WithLoginDestination(path string) Option {
	return func(c *Client) { c.loginDest = path }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates an auth client.
func New(gw *gateway.Client, sessions *session.Context, nav navigation.Navigator, options ...Option) (*Client, error) {
	if gw == nil {
		return nil, errors.New("[authclient.New] gateway is required")
	}
	if sessions == nil {
		return nil, errors.New("[authclient.New] session context is required")
	}
	if nav == nil {
		return nil, errors.New("[authclient.New] navigator is required")
	}

	c := &Client{
		gw:        gw,
		sessions:  sessions,
		nav:       nav,
		loginDest: gateway.DefaultLoginPath,
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Login authenticates with the given credentials. On success the session is
// established before Login returns; on failure the error is the gateway's
// normalized *gateway.Error and no store mutation has happened.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	return c.authenticate(ctx, loginPath, creds)
}

// Register creates an account and establishes the returned session, with the
// same postconditions as Login.
func (c *Client) Register(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	return c.authenticate(ctx, registerPath, creds)
}

// Logout clears the session and navigates to the login destination.
func (c *Client) Logout() {
	c.sessions.Logout()
	c.nav.Navigate(c.loginDest)
}

func (c *Client) authenticate(ctx context.Context, path string, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.gw.Post(ctx, path, creds, &resp); err != nil {
		c.logger.Debug().Err(err).Str("path", path).Msg("authentication failed")
		return nil, err
	}

	c.sessions.Set(session.Session{
		Token: resp.JWTToken,
		User:  resp.UserInfo,
	})
	c.logger.Info().Str("path", path).Msg("session established")
	return &resp, nil
}
