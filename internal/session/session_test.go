package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store session.Store) {
	t.Helper()

	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.Remove(ctx))

	saved := &session.Session{AccessToken: "tok-1", ValidationHash: "abc"}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	require.NoError(t, store.Save(ctx, &session.Session{AccessToken: "tok-2", ValidationHash: "def"}))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", loaded.AccessToken)

	require.NoError(t, store.Remove(ctx))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.ErrorIs(t, store.Save(ctx, nil), constants.ErrNilSession)
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")
	testStore(t, session.NewFileStore(path))
}

func TestFileStore_Format(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), &session.Session{AccessToken: "tok", ValidationHash: "hash"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"tok","validation_hash":"hash"}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())
}

func TestFileStore_Malformed(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not json":   "{{{",
		"no token":   `{"validation_hash":"x"}`,
		"empty":      "",
		"wrong type": `{"access_token": 5}`,
	}

	for name, content := range tests {
		content := content
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "session.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			loaded, err := session.NewFileStore(path).Load(context.Background())
			require.NoError(t, err)
			assert.Nil(t, loaded)
		})
	}
}

func TestFileStore_DefaultPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, constants.DefaultSessionFile, session.NewFileStore("").Path())
}

func TestBoltStore(t *testing.T) {
	t.Parallel()

	testStore(t, session.NewBoltStore(filepath.Join(t.TempDir(), "session.db")))
}

func TestNew(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := session.New("", filepath.Join(dir, "s.json"), "")
	require.NoError(t, err)
	assert.IsType(t, &session.FileStore{}, store)

	store, err = session.New("bolt", filepath.Join(dir, "s.db"), "")
	require.NoError(t, err)
	assert.IsType(t, &session.BoltStore{}, store)

	store, err = session.New("nats", "", "nats://127.0.0.1:4222")
	require.NoError(t, err)
	assert.IsType(t, &session.NATSStore{}, store)

	_, err = session.New("nats", "", "")
	require.ErrorIs(t, err, constants.ErrNATSURLRequired)

	_, err = session.New("redis", "", "")
	require.ErrorIs(t, err, constants.ErrUnknownSessionBackend)
}

func TestNATSStore(t *testing.T) {
	t.Parallel()

	url := os.Getenv("FLEXVM_TEST_NATS_URL")
	if url == "" {
		t.Skip("FLEXVM_TEST_NATS_URL not set")
	}

	testStore(t, session.NewNATSStore(url, "flexvm_test_sessions"))
}
