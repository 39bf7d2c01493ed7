package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	err := store.Save(Session{Token: "tok-123", UserID: "user-1"})
	require.NoError(t, err)

	session, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-123", session.Token)
	require.Equal(t, "user-1", session.UserID)
}

func TestLoadWithoutSession(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	err := store.Save(Session{Token: "   "})
	require.Error(t, err)
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	require.NoError(t, store.Save(Session{Token: "tok"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSessionFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)
	require.NoError(t, store.Save(Session{Token: "tok"}))

	info, err := os.Stat(filepath.Join(dir, "session.toml"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
