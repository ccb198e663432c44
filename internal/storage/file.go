package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/adcsa/ged/internal/file"
	"github.com/pkg/errors"
)

type fileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a Store persisted as a JSON object in the file at
// path. The file and its directory are created on first write, readable by
// the current user only.
func NewFileStore(path string) Store {
	return &fileStore{
		path: path,
	}
}

func (f *fileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (f *fileStore) Set(_ context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *fileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "error deleting %s", f.path)
		}
		return nil
	}
	return f.write(values)
}

func (f *fileStore) read() (map[string]string, error) {
	values := map[string]string{}
	if !file.Exists(f.path) {
		return values, nil
	}
	bytes, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", f.path)
	}
	if len(bytes) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(bytes, &values); err != nil {
		return nil, errors.Wrapf(err, "error parsing %s", f.path)
	}
	return values, nil
}

func (f *fileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return errors.Wrapf(err, "error creating directory for %s", f.path)
	}
	bytes, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshaling stored values")
	}
	if err := os.WriteFile(f.path, bytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing %s", f.path)
	}
	return nil
}
