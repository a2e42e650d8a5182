package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore is the durable Store implementation: a flat JSON object kept
// in a single file. Every Set/Remove rewrites the file atomically so a
// crash mid-write never leaves a torn credential behind.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewFileStore opens (or lazily creates) the store file at path. A
// missing or unreadable file starts the store empty rather than failing:
// losing a cached credential is a normal "not logged in" condition.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	fs := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, errors.Wrap(err, "[NewFileStore] read store file")
	}
	if err := json.Unmarshal(data, &fs.values); err != nil {
		// Corrupt store file: treat as empty, same as a missing one.
		fs.values = make(map[string]string)
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	value, ok := fs.values[key]
	return value, ok
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value
	if err := fs.flush(); err != nil {
		return errors.Wrap(err, "[FileStore.Set] flush")
	}
	return nil
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	if err := fs.flush(); err != nil {
		return errors.Wrap(err, "[FileStore.Remove] flush")
	}
	return nil
}

// flush writes the current map to disk. Callers hold the write lock.
func (fs *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(fs.path, bytes.NewReader(data))
}
