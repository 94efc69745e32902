// Package session holds the in-memory authoritative session state, derived
// from and synchronized to the credential store. The zero Session is the
// unauthenticated state.
package session

import "github.com/jrsteele09/go-backoffice-client/credentials"

// Session is the derived view over the stored credential pair.
type Session struct {
	Token string
	User  *credentials.User
}

// Authenticated reports whether a credential is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Load reads the credential store once and derives the session from it.
// A malformed stored profile degrades to a session without one.
func Load(store credentials.Store) Session {
	return Session{
		Token: store.GetToken(),
		User:  store.GetUser(),
	}
}
