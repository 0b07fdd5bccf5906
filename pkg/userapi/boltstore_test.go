package userapi_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/premmsharma122/user-management-system/pkg/userapi"
)

func newBoltStore(t *testing.T) *userapi.BoltStore {
	t.Helper()

	store, err := userapi.OpenBoltStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestBoltStoreRoundtrip(t *testing.T) {
	store := newBoltStore(t)

	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok, "fresh store should be empty")

	state := userapi.State{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         userapi.User{ID: "user-1", Name: "Alice", Role: "user"},
	}
	require.NoError(t, store.Save(state))

	loaded, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, state, loaded)
}

func TestBoltStoreSaveOverwrites(t *testing.T) {
	store := newBoltStore(t)

	require.NoError(t, store.Save(userapi.State{AccessToken: "old"}))
	require.NoError(t, store.Save(userapi.State{AccessToken: "new"}))

	loaded, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", loaded.AccessToken)
}

func TestBoltStoreClear(t *testing.T) {
	store := newBoltStore(t)

	require.NoError(t, store.Save(userapi.State{AccessToken: "access-1"}))
	require.NoError(t, store.Clear())

	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := userapi.OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(userapi.State{AccessToken: "access-1", RefreshToken: "refresh-1"}))
	require.NoError(t, store.Close())

	reopened, err := userapi.OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, ok, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "access-1", loaded.AccessToken)
	require.Equal(t, "refresh-1", loaded.RefreshToken)
}
