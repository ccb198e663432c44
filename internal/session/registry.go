package session

import (
	"context"
	"sync"
	"time"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/storage"
	"github.com/golang/glog"
)

// Registry keeps one Holder per browser. Holders are created the first time
// a browser is seen, which is the equivalent of a page load, and are
// forgotten after they went unused for the idle TTL. Forgetting a Holder only
// drops the in-memory user record; the credential stays in storage.
type Registry struct {
	backend       storage.Backend
	authenticator Authenticator
	navigator     navigation.Navigator
	idleTTL       time.Duration
	now           func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	holder   *Holder
	lastSeen time.Time
}

// NewRegistry returns a Registry handing out Holders backed by backend.
func NewRegistry(
	backend storage.Backend,
	authenticator Authenticator,
	navigator navigation.Navigator,
	idleTTL time.Duration,
) *Registry {
	return &Registry{
		backend:       backend,
		authenticator: authenticator,
		navigator:     navigator,
		idleTTL:       idleTTL,
		now:           time.Now,
		entries:       map[string]*registryEntry{},
	}
}

// Get returns the Holder of the given browser, creating it if needed.
func (r *Registry) Get(ctx context.Context, browserID string) *Holder {
	r.mu.Lock()
	if entry, ok := r.entries[browserID]; ok {
		entry.lastSeen = r.now()
		r.mu.Unlock()
		return entry.holder
	}
	r.mu.Unlock()

	// Creating a Holder reads storage, so it happens outside of the lock.
	holder := NewHolder(
		ctx,
		r.backend.Store(browserID),
		r.authenticator,
		r.navigator,
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[browserID]; ok {
		entry.lastSeen = r.now()
		return entry.holder
	}
	r.entries[browserID] = &registryEntry{
		holder:   holder,
		lastSeen: r.now(),
	}
	holder.Subscribe(func(snapshot Snapshot) {
		username := ""
		if snapshot.User != nil {
			username = snapshot.User.Username
		}
		glog.V(1).Infof(
			"browser %s: session %s %s",
			browserID,
			snapshot.State,
			username,
		)
	})
	return holder
}

// Len returns the number of Holders currently kept.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep forgets every Holder unused for longer than the idle TTL and returns
// how many were forgotten.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.idleTTL)
	var swept int
	for browserID, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, browserID)
			swept++
		}
	}
	return swept
}

// Run sweeps on the given interval until ctx is canceled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if swept := r.Sweep(); swept > 0 {
				glog.V(1).Infof("forgot %d idle browser sessions", swept)
			}
		case <-ctx.Done():
			return
		}
	}
}
