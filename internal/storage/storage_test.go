package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func requireStoreRoundTrip(t *testing.T, store Store) {
	ctx := context.Background()
	_, ok, err := store.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "auth_token", "abc"))
	value, ok, err := store.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", value)

	require.NoError(t, store.Delete(ctx, "auth_token"))
	_, ok, err = store.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting twice is fine
	require.NoError(t, store.Delete(ctx, "auth_token"))
}

func TestMemoryStore(t *testing.T) {
	requireStoreRoundTrip(t, NewMemoryStore())
}

func TestMemoryBackendIsolatesOwners(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(0)
	require.NoError(t, backend.CheckHealth(ctx))
	alice := backend.Store("alice")
	bob := backend.Store("bob")
	require.NoError(t, alice.Set(ctx, "auth_token", "alice-token"))
	_, ok, err := bob.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)
	// A second handle on the same owner sees the same values
	value, ok, err := backend.Store("alice").Get(ctx, "auth_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "alice-token", value)
}

func TestMemoryBackendExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	backend := NewMemoryBackend(time.Hour).(*memoryBackend)
	backend.now = func() time.Time { return now }

	swept := backend.Store("swept-browser")
	require.NoError(t, swept.Set(ctx, "auth_token", "old-token"))
	now = now.Add(30 * time.Minute)
	active := backend.Store("active-browser")
	require.NoError(t, active.Set(ctx, "auth_token", "fresh-token"))

	// Still within the ttl of the first write
	_, ok, err := swept.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(45 * time.Minute)
	_, ok, err = swept.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)
	value, ok, err := active.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "fresh-token", value)

	// A later write anywhere releases owners nobody reads anymore
	now = now.Add(time.Hour)
	require.NoError(t, backend.Store("other").Set(ctx, "auth_token", "x"))
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	require.NotContains(t, backend.owners, "swept-browser")
	require.NotContains(t, backend.owners, "active-browser")
	require.Contains(t, backend.owners, "other")
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ged", "session")
	requireStoreRoundTrip(t, NewFileStore(path))
	// The file is removed once empty
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, NewFileStore(path).Set(ctx, "auth_token", "abc"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	value, ok, err := NewFileStore(path).Get(ctx, "auth_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", value)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	_, _, err := NewFileStore(path).Get(context.Background(), "auth_token")
	require.Error(t, err)
}
