// Package storage provides the small persistent key/value space the console
// keeps per browser (or per terminal user). It plays the part a browser's
// local storage plays for a single-page application: it survives restarts of
// the console process when backed by Redis, MongoDB or a file.
package storage

import "context"

// Store is a key/value space owned by one browser or terminal user.
type Store interface {
	// Get returns the value stored under key. The bool is false when nothing
	// is stored there.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key. It returns only once the value is durable
	// as far as the backend is concerned.
	Set(ctx context.Context, key string, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend hands out the Stores of individual owners.
type Backend interface {
	// Store returns the Store of the given owner. It never blocks.
	Store(owner string) Store
	// CheckHealth returns an error if the backend cannot be reached.
	CheckHealth(ctx context.Context) error
}
