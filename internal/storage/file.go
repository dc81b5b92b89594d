package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per key inside a directory
type FileStore struct {
	Dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.Dir, key+".json")
}

func (fs *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (fs *FileStore) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(fs.Dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(fs.path(key), value, 0600)
}

func (fs *FileStore) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := os.Stat(fs.path(key)); os.IsNotExist(err) {
		return nil // Nothing to delete
	}
	return os.Remove(fs.path(key))
}

func (fs *FileStore) Close() error {
	return nil
}
