package storage

import (
	"context"
	"sync"
	"time"
)

// memoryOwner holds one owner's values. Like a Redis hash with a TTL, the
// whole set expires ttl after its last write.
type memoryOwner struct {
	values  map[string]string
	expires time.Time
}

type memoryBackend struct {
	mu        sync.RWMutex
	owners    map[string]*memoryOwner
	ttl       time.Duration
	nextPrune time.Time
	now       func() time.Time
}

// NewMemoryBackend returns a Backend that keeps everything in process memory.
// Everything is lost when the process exits. An owner's values expire ttl
// after they were last written; a ttl of zero disables expiry.
func NewMemoryBackend(ttl time.Duration) Backend {
	return &memoryBackend{
		owners: map[string]*memoryOwner{},
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *memoryBackend) Store(owner string) Store {
	return &memoryStore{
		backend: m,
		owner:   owner,
	}
}

func (m *memoryBackend) CheckHealth(context.Context) error {
	return nil
}

func (m *memoryBackend) expired(o *memoryOwner, now time.Time) bool {
	return m.ttl > 0 && !now.Before(o.expires)
}

// prune drops every expired owner, at most once per ttl. Owners that are
// never read again, such as swept browsers, are released this way. The
// caller must hold the write lock.
func (m *memoryBackend) prune(now time.Time) {
	if m.ttl <= 0 || now.Before(m.nextPrune) {
		return
	}
	for owner, o := range m.owners {
		if m.expired(o, now) {
			delete(m.owners, owner)
		}
	}
	m.nextPrune = now.Add(m.ttl)
}

type memoryStore struct {
	backend *memoryBackend
	owner   string
}

// NewMemoryStore returns a standalone in-memory Store whose values never
// expire.
func NewMemoryStore() Store {
	return NewMemoryBackend(0).Store("")
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.backend.mu.RLock()
	defer m.backend.mu.RUnlock()
	o, ok := m.backend.owners[m.owner]
	if !ok || m.backend.expired(o, m.backend.now()) {
		return "", false, nil
	}
	value, ok := o.values[key]
	return value, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value string) error {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	now := m.backend.now()
	m.backend.prune(now)
	o, ok := m.backend.owners[m.owner]
	if !ok || m.backend.expired(o, now) {
		o = &memoryOwner{values: map[string]string{}}
		m.backend.owners[m.owner] = o
	}
	o.values[key] = value
	o.expires = now.Add(m.backend.ttl)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	m.backend.prune(m.backend.now())
	o, ok := m.backend.owners[m.owner]
	if !ok {
		return nil
	}
	delete(o.values, key)
	if len(o.values) == 0 {
		delete(m.backend.owners, m.owner)
	}
	return nil
}
