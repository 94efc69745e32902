package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The access token is opaque to the client except for its registered JWT
// claims, which screens use to show who is logged in and when the session
// will lapse. The signature is NOT verified here; only the backend can do
// that, and a tampered token fails server-side anyway.

// ExpiresAt returns the token's expiry claim. ok is false when the token is
// absent, is not a JWT, or carries no expiry.
func (s Session) ExpiresAt() (time.Time, bool) {
	claims, ok := s.claims()
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Subject returns the token's subject claim, or "" when unavailable.
func (s Session) Subject() string {
	claims, ok := s.claims()
	if !ok {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func (s Session) claims() (jwt.MapClaims, bool) {
	if s.Token == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
