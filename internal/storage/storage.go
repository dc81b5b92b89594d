package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tdash/internal/config"
)

// Keys under which the application stores its blobs
const (
	KeyBoard = "projects"
	KeyUser  = "user"
)

var (
	// ErrNotFound is returned by Get when nothing is stored under the key
	ErrNotFound = errors.New("key not found")

	// ErrInvalidKey is returned for empty keys or keys that would escape the store
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnknownBackend is returned by Open for an unsupported backend name
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// KV is a string-keyed blob store. Put overwrites the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the backend named in the configuration
func Open(ctx context.Context, cfg config.StorageConfig, dataDir string) (KV, error) {
	switch strings.ToLower(cfg.Backend) {
	case config.BackendFile, "":
		return NewFileStore(dataDir), nil
	case config.BackendSQLite:
		path := cfg.DSN
		if path == "" {
			path = defaultSQLitePath(dataDir)
		}
		return NewSQLiteStore(path)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.DSN)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
