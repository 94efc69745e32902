package authclient

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-backoffice-client/credentials"
	"github.com/jrsteele09/go-backoffice-client/session"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const googleLoginPath = "/auth/v1/google/login"

// GoogleLoginURL returns the gateway endpoint that starts the
// backend-driven Google login flow.
func GoogleLoginURL(gatewayBaseURL string) string {
	return strings.TrimRight(gatewayBaseURL, "/") + googleLoginPath
}

// SSO drives a provider-hosted login: the user is sent to the provider's
// consent screen, and the returned authorization code is exchanged and
// verified here before the session is established. The provider's own keys
// sign the ID token, so unlike password login nothing needs to round-trip
// through the back-office auth endpoint.
type SSO struct {
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
	sessions *session.Context
}

// SSOParams identifies the relying party at the provider.
type SSOParams struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewSSO discovers the provider's endpoints from its issuer URL.
func NewSSO(ctx context.Context, sessions *session.Context, params SSOParams) (*SSO, error) {
	if sessions == nil {
		return nil, errors.New("[NewSSO] session context is required")
	}

	provider, err := oidc.NewProvider(ctx, params.IssuerURL)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSSO] oidc.NewProvider")
	}

	return &SSO{
		oauth: oauth2.Config{
			ClientID:     params.ClientID,
			ClientSecret: params.ClientSecret,
			RedirectURL:  params.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: params.ClientID}),
		sessions: sessions,
	}, nil
}

// AuthCodeURL returns the provider consent URL for the given CSRF state.
func (s *SSO) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for tokens, verifies the ID token,
// and establishes the session. On any failure the store is left untouched.
func (s *SSO) Exchange(ctx context.Context, code string) (*LoginResponse, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "[SSO.Exchange] code exchange")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("[SSO.Exchange] no ID token in response")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "[SSO.Exchange] ID token verification")
	}

	var claims struct {
		Sub               string `json:"sub"`
		Email             string `json:"email"`
		GivenName         string `json:"given_name"`
		FamilyName        string `json:"family_name"`
		PreferredUsername string `json:"preferred_username"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "[SSO.Exchange] extract claims")
	}

	username := claims.PreferredUsername
	if username == "" {
		username = claims.Email
	}
	user := &credentials.User{
		ID:        claims.Sub,
		Username:  username,
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
	}

	s.sessions.Set(session.Session{Token: token.AccessToken, User: user})

	return &LoginResponse{JWTToken: token.AccessToken, UserInfo: user}, nil
}
