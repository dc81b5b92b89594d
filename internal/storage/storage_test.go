package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"tdash/internal/config"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	stores := map[string]KV{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "data")),
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}

	if dsn := os.Getenv("TDASH_TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := NewPostgresStore(context.Background(), dsn)
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		stores["postgres"] = pg
	}

	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := kv.Get(ctx, "projects")
			is.True(errors.Is(err, ErrNotFound)) // nothing stored yet

			is.NoErr(kv.Put(ctx, "projects", []byte(`{"projects":[]}`)))
			got, err := kv.Get(ctx, "projects")
			is.NoErr(err)
			is.Equal(string(got), `{"projects":[]}`)

			// Put overwrites the whole value
			is.NoErr(kv.Put(ctx, "projects", []byte(`{}`)))
			got, err = kv.Get(ctx, "projects")
			is.NoErr(err)
			is.Equal(string(got), `{}`)

			is.NoErr(kv.Delete(ctx, "projects"))
			_, err = kv.Get(ctx, "projects")
			is.True(errors.Is(err, ErrNotFound))

			// deleting a missing key is not an error
			is.NoErr(kv.Delete(ctx, "projects"))
		})
	}
}

func TestKV_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			is.NoErr(kv.Put(ctx, KeyBoard, []byte("board")))
			is.NoErr(kv.Put(ctx, KeyUser, []byte("user")))
			is.NoErr(kv.Delete(ctx, KeyUser))

			got, err := kv.Get(ctx, KeyBoard)
			is.NoErr(err)
			is.Equal(string(got), "board")
		})
	}
}

func TestKV_InvalidKey(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			for _, key := range []string{"", "../escape", `a\b`, ".."} {
				is.True(errors.Is(kv.Put(ctx, key, []byte("x")), ErrInvalidKey))
				_, err := kv.Get(ctx, key)
				is.True(errors.Is(err, ErrInvalidKey))
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	m := NewMemoryStore()

	value := []byte("abc")
	is.NoErr(m.Put(ctx, "k", value))
	value[0] = 'z'

	got, err := m.Get(ctx, "k")
	is.NoErr(err)
	is.Equal(string(got), "abc")
}

func TestFileStore_WritesJSONFilePerKey(t *testing.T) {
	is := is.New(t)
	dir := filepath.Join(t.TempDir(), "store")
	fs := NewFileStore(dir)

	is.NoErr(fs.Put(context.Background(), "user", []byte(`{"name":"Ada"}`)))

	data, err := os.ReadFile(filepath.Join(dir, "user.json"))
	is.NoErr(err)
	is.Equal(string(data), `{"name":"Ada"}`)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("defaults to file", func(t *testing.T) {
		is := is.New(t)
		kv, err := Open(ctx, config.StorageConfig{}, dir)
		is.NoErr(err)
		defer kv.Close()
		_, ok := kv.(*FileStore)
		is.True(ok)
	})

	t.Run("sqlite under the data dir", func(t *testing.T) {
		is := is.New(t)
		kv, err := Open(ctx, config.StorageConfig{Backend: config.BackendSQLite}, dir)
		is.NoErr(err)
		defer kv.Close()
		_, err = os.Stat(filepath.Join(dir, "tdash.db"))
		is.NoErr(err)
	})

	t.Run("memory", func(t *testing.T) {
		is := is.New(t)
		kv, err := Open(ctx, config.StorageConfig{Backend: "MEMORY"}, dir)
		is.NoErr(err)
		_, ok := kv.(*MemoryStore)
		is.True(ok)
	})

	t.Run("unknown backend", func(t *testing.T) {
		is := is.New(t)
		_, err := Open(ctx, config.StorageConfig{Backend: "redis"}, dir)
		is.True(errors.Is(err, ErrUnknownBackend))
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		is := is.New(t)
		_, err := Open(ctx, config.StorageConfig{Backend: config.BackendPostgres}, dir)
		is.True(err != nil)
	})
}
