package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-backoffice-client/credentials"
	"github.com/jrsteele09/go-backoffice-client/internal/localstore"
	"github.com/jrsteele09/go-backoffice-client/session"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) credentials.Store {
	t.Helper()
	return credentials.NewKVStore(localstore.NewMemoryKV())
}

func TestLoadInitialSession(t *testing.T) {
	store := newStore(t)
	store.SetToken("abc")
	store.SetUser(&credentials.User{Username: "u"})

	s := session.Load(store)
	require.True(t, s.Authenticated())
	require.Equal(t, "abc", s.Token)
	require.Equal(t, "u", s.User.Username)
}

func TestLoadEmptyStoreIsUnauthenticated(t *testing.T) {
	s := session.Load(newStore(t))
	require.False(t, s.Authenticated())
	require.Nil(t, s.User)
}

func TestLoadDegradesOnCorruptProfile(t *testing.T) {
	kv := localstore.NewMemoryKV()
	require.NoError(t, kv.Set("user_info", "not-json"))
	store := credentials.NewKVStore(kv)

	s := session.Load(store)
	require.Nil(t, s.User)
}

func TestSetPersistsBeforeNotifying(t *testing.T) {
	store := newStore(t)
	ctx, err := session.NewContext(store)
	require.NoError(t, err)

	var seenToken string
	ctx.Subscribe(func(s session.Session) {
		// The store must already hold the token when observers fire.
		seenToken = store.GetToken()
	})

	ctx.Set(session.Session{Token: "abc", User: &credentials.User{Username: "u"}})

	require.Equal(t, "abc", seenToken)
	require.Equal(t, "abc", ctx.Current().Token)
	require.Equal(t, "abc", store.GetToken())
	require.Equal(t, "u", store.GetUser().Username)
}

func TestLogoutClearsStateAndNotifies(t *testing.T) {
	store := newStore(t)
	ctx, err := session.NewContext(store)
	require.NoError(t, err)
	ctx.Set(session.Session{Token: "abc", User: &credentials.User{Username: "u"}})

	var transitions []bool
	ctx.Subscribe(func(s session.Session) { transitions = append(transitions, s.Authenticated()) })

	ctx.Logout()

	require.Equal(t, []bool{false}, transitions)
	require.False(t, ctx.Current().Authenticated())
	require.Empty(t, store.GetToken())
	require.Nil(t, store.GetUser())
}

func TestInvalidateIsIdempotentAndAlwaysNotifies(t *testing.T) {
	store := newStore(t)
	ctx, err := session.NewContext(store)
	require.NoError(t, err)
	ctx.Set(session.Session{Token: "abc"})

	var fired int
	ctx.Subscribe(func(session.Session) { fired++ })

	ctx.Invalidate()
	ctx.Invalidate()

	require.Equal(t, 2, fired)
	require.False(t, ctx.Current().Authenticated())
}

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestClaimsFromJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedTestToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})

	s := session.Session{Token: token}
	require.Equal(t, "user-1", s.Subject())

	got, ok := s.ExpiresAt()
	require.True(t, ok)
	require.True(t, got.Equal(exp))
}

func TestClaimsFromOpaqueToken(t *testing.T) {
	s := session.Session{Token: "not-a-jwt"}

	require.Empty(t, s.Subject())
	_, ok := s.ExpiresAt()
	require.False(t, ok)
}
