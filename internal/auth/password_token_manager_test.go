package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/session"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"
)

const authHost = "https://customerapiauth.fortinet.com"

func loginBody() map[string]string {
	return map[string]string{
		"username":   "alice",
		"password":   "secret",
		"client_id":  "flexvm",
		"grant_type": "password",
	}
}

func newGockManager(t *testing.T, store session.Store, persist bool) *PasswordTokenManager {
	t.Helper()

	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)

	t.Cleanup(func() {
		gock.RestoreClient(httpClient)
		gock.Off()
	})

	return NewPasswordTokenManager(&Config{
		Username:       "alice",
		Password:       "secret",
		PersistSession: persist,
		Store:          store,
		HTTPClient:     httpClient,
	})
}

func TestPasswordTokenManager_Login(t *testing.T) {
	t.Run("password grant", func(t *testing.T) {
		manager := newGockManager(t, nil, false)

		gock.New(authHost).
			Post("/api/v1/oauth/token/").
			MatchType("json").
			JSON(loginBody()).
			Reply(200).
			JSON(map[string]interface{}{"access_token": "tok-1", "expires_in": 3600})

		assert.Equal(t, Unauthenticated, manager.State())

		require.NoError(t, manager.Login(context.Background()))
		assert.Equal(t, "tok-1", manager.Token())
		assert.Equal(t, Authenticated, manager.State())
		assert.True(t, manager.Authenticated())
		assert.True(t, gock.IsDone())
	})

	t.Run("rejected credentials", func(t *testing.T) {
		manager := newGockManager(t, nil, false)

		gock.New(authHost).
			Post("/api/v1/oauth/token/").
			Reply(401).
			JSON(map[string]interface{}{"error": "invalid_grant"})

		err := manager.Login(context.Background())

		var authErr *flexvm.AuthenticationError

		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 401, authErr.StatusCode)
		assert.Equal(t, "invalid_grant", authErr.Body["error"])
		assert.Equal(t, Unauthenticated, manager.State())
		assert.Empty(t, manager.Token())
	})

	t.Run("unchecked login ignores the status", func(t *testing.T) {
		manager := newGockManager(t, nil, false)

		gock.New(authHost).
			Post("/api/v1/oauth/token/").
			Reply(401).
			JSON(map[string]interface{}{"access_token": "tok-u"})

		require.NoError(t, manager.LoginUnchecked(context.Background()))
		assert.Equal(t, "tok-u", manager.Token())
	})

	t.Run("missing access token", func(t *testing.T) {
		manager := newGockManager(t, nil, false)

		gock.New(authHost).
			Post("/api/v1/oauth/token/").
			Reply(200).
			JSON(map[string]interface{}{"token_type": "bearer"})

		err := manager.Login(context.Background())
		require.ErrorIs(t, err, flexvm.ErrNoAccessToken)
	})

	t.Run("missing credentials fail before sending", func(t *testing.T) {
		clearCredentialEnv(t)

		var hits int32

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer server.Close()

		manager := NewPasswordTokenManager(&Config{AuthURL: server.URL})

		err := manager.Login(context.Background())
		require.ErrorIs(t, err, flexvm.ErrMissingCredentials)
		assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		manager := NewPasswordTokenManager(&Config{AuthURL: url, Username: "alice", Password: "secret"})

		var transportErr *flexvm.TransportError

		require.ErrorAs(t, manager.Login(context.Background()), &transportErr)
		assert.Equal(t, url, transportErr.URL)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestPasswordTokenManager_SessionCache(t *testing.T) {
	t.Parallel()

	newServer := func(t *testing.T, token string) (*httptest.Server, *int32) {
		t.Helper()

		var hits int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte(`{"access_token": "` + token + `"}`))
		}))
		t.Cleanup(server.Close)

		return server, &hits
	}

	t.Run("matching hash skips the network", func(t *testing.T) {
		t.Parallel()

		server, hits := newServer(t, "network-token")
		store := session.NewFileStore(filepath.Join(t.TempDir(), constants.DefaultSessionFile))
		require.NoError(t, store.Save(context.Background(), &session.Session{
			AccessToken:    "cached-token",
			ValidationHash: ValidationHash("alice", "secret"),
		}))

		manager := NewPasswordTokenManager(&Config{
			AuthURL: server.URL, Username: "alice", Password: "secret",
			PersistSession: true, Store: store,
		})

		require.NoError(t, manager.Login(context.Background()))
		assert.Equal(t, "cached-token", manager.Token())
		assert.Equal(t, Authenticated, manager.State())
		assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	})

	t.Run("mismatched hash logs in and overwrites", func(t *testing.T) {
		t.Parallel()

		server, hits := newServer(t, "network-token")
		store := session.NewBoltStore(filepath.Join(t.TempDir(), constants.DefaultSessionDB))
		require.NoError(t, store.Save(context.Background(), &session.Session{
			AccessToken:    "someone-else",
			ValidationHash: ValidationHash("bob", "other"),
		}))

		manager := NewPasswordTokenManager(&Config{
			AuthURL: server.URL, Username: "alice", Password: "secret",
			PersistSession: true, Store: store,
		})

		require.NoError(t, manager.Login(context.Background()))
		assert.Equal(t, "network-token", manager.Token())
		assert.Equal(t, int32(1), atomic.LoadInt32(hits))

		stored, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &session.Session{
			AccessToken:    "network-token",
			ValidationHash: ValidationHash("alice", "secret"),
		}, stored)
	})

	t.Run("persistence disabled ignores the store", func(t *testing.T) {
		t.Parallel()

		server, hits := newServer(t, "network-token")
		path := filepath.Join(t.TempDir(), constants.DefaultSessionFile)
		store := session.NewFileStore(path)
		cached := &session.Session{AccessToken: "cached-token", ValidationHash: ValidationHash("alice", "secret")}
		require.NoError(t, store.Save(context.Background(), cached))

		manager := NewPasswordTokenManager(&Config{
			AuthURL: server.URL, Username: "alice", Password: "secret", Store: store,
		})

		require.NoError(t, manager.Login(context.Background()))
		assert.Equal(t, "network-token", manager.Token())
		assert.Equal(t, int32(1), atomic.LoadInt32(hits))

		stored, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, cached, stored)
	})

	t.Run("logout removes the session and keeps the token", func(t *testing.T) {
		t.Parallel()

		server, hits := newServer(t, "network-token")
		store := session.NewFileStore(filepath.Join(t.TempDir(), constants.DefaultSessionFile))

		manager := NewPasswordTokenManager(&Config{
			AuthURL: server.URL, Username: "alice", Password: "secret",
			PersistSession: true, Store: store,
		})

		require.NoError(t, manager.Login(context.Background()))
		require.NoError(t, manager.Logout(context.Background()))
		assert.Equal(t, "network-token", manager.Token())

		stored, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Nil(t, stored)

		require.NoError(t, manager.Login(context.Background()))
		assert.Equal(t, int32(2), atomic.LoadInt32(hits))
	})

	t.Run("unreadable store falls back to the network", func(t *testing.T) {
		t.Parallel()

		server, hits := newServer(t, "network-token")
		manager := NewPasswordTokenManager(&Config{
			AuthURL: server.URL, Username: "alice", Password: "secret",
			PersistSession: true, Store: failingStore{},
		})

		require.NoError(t, manager.Login(context.Background()))
		assert.Equal(t, int32(1), atomic.LoadInt32(hits))
		require.Error(t, manager.Logout(context.Background()))
	})
}

var errStore = errors.New("store unavailable")

type failingStore struct{}

func (failingStore) Load(context.Context) (*session.Session, error) { return nil, errStore }
func (failingStore) Save(context.Context, *session.Session) error   { return errStore }
func (failingStore) Remove(context.Context) error                   { return errStore }

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "authenticating", Authenticating.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "State(9)", State(9).String())
}
