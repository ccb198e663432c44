package session

import (
	"context"
	"testing"
	"time"

	"github.com/adcsa/ged/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	backend := storage.NewMemoryBackend(0)
	require.NoError(
		t,
		backend.Store("browser-a").Set(
			context.Background(),
			TokenKey,
			newTestToken(t, time.Now().Add(time.Hour)),
		),
	)
	r := NewRegistry(backend, &mockAuthenticator{}, &mockNavigator{}, time.Hour)
	a := r.Get(context.Background(), "browser-a")
	require.True(t, a.IsAuthenticated())
	require.Same(t, a, r.Get(context.Background(), "browser-a"))
	b := r.Get(context.Background(), "browser-b")
	require.False(t, b.IsAuthenticated())
	require.NotSame(t, a, b)
	require.Equal(t, 2, r.Len())
}

func TestRegistrySweep(t *testing.T) {
	now := time.Now()
	r := NewRegistry(
		storage.NewMemoryBackend(0),
		&mockAuthenticator{},
		&mockNavigator{},
		time.Minute,
	)
	r.now = func() time.Time { return now }
	r.Get(context.Background(), "old")
	now = now.Add(2 * time.Minute)
	r.Get(context.Background(), "new")
	require.Equal(t, 1, r.Sweep())
	require.Equal(t, 1, r.Len())
	require.Equal(t, 0, r.Sweep())
}

func TestRegistryRun(t *testing.T) {
	r := NewRegistry(
		storage.NewMemoryBackend(0),
		&mockAuthenticator{},
		&mockNavigator{},
		time.Nanosecond,
	)
	r.Get(context.Background(), "browser")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()
	require.Eventually(
		t,
		func() bool { return r.Len() == 0 },
		time.Second,
		time.Millisecond,
	)
	cancel()
	<-done
}
