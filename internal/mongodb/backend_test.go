package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

// TestBackend runs against a live MongoDB when MONGODB_CONNECTION_STRING is
// set.
func TestBackend(t *testing.T) {
	if os.Getenv("MONGODB_CONNECTION_STRING") == "" {
		t.Skip("MONGODB_CONNECTION_STRING not set")
	}
	ctx := context.Background()
	database, err := Database(ctx)
	require.NoError(t, err)
	defer database.Client().Disconnect(ctx) // nolint: errcheck
	b, err := NewBackend(ctx, database, time.Hour)
	require.NoError(t, err)
	require.NoError(t, b.CheckHealth(ctx))

	owner := uuid.NewV4().String()
	s := b.Store(owner)
	_, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, s.Set(ctx, "auth_token", "abc"))
	require.NoError(t, s.Set(ctx, "auth_token", "def"))
	value, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "def", value)
	// Another owner sees nothing
	_, ok, err = b.Store(uuid.NewV4().String()).Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, s.Delete(ctx, "auth_token"))
	_, ok, err = s.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewBackendRejectsSubSecondTTL(t *testing.T) {
	for _, ttl := range []time.Duration{-time.Second, 500 * time.Millisecond} {
		_, err := NewBackend(context.Background(), nil, ttl)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid ttl")
	}
}
