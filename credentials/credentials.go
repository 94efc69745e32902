// Package credentials holds the durable (token, user-profile) pair that
// represents an authenticated identity. The store is the source of truth the
// session context loads from at startup and mirrors every mutation back to;
// the call gateway reads the token on every outbound call.
package credentials

// User is the profile the backend returns alongside a token.
type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Store persists the credential pair. All operations are synchronous and
// never touch the network. Reads fail soft: a corrupt stored profile is
// treated as absent, never surfaced as an error.
type Store interface {
	GetToken() string
	SetToken(token string)
	ClearToken()

	GetUser() *User
	SetUser(user *User)
	ClearUser()

	// ClearAll removes both slots; callers observe either the old pair or
	// the cleared state, never a half-cleared one.
	ClearAll()
}
