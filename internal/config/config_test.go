package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "config.json"))
	is.NoErr(err)
	is.Equal(cfg.Storage.Backend, BackendFile)
	is.Equal(cfg.Log.Level, "warn")
	is.Equal(cfg.Log.Format, LogFormatConsole)
	is.Equal(cfg.DataDir, dir) // data lives next to the config file
}

func TestLoad_ReadsFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	err := os.WriteFile(path, []byte(`{
		"data_dir": "/srv/tdash",
		"storage": {"backend": "sqlite", "dsn": "/srv/tdash/board.db"},
		"log": {"level": "debug"}
	}`), 0644)
	is.NoErr(err)

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.DataDir, "/srv/tdash")
	is.Equal(cfg.Storage.Backend, BackendSQLite)
	is.Equal(cfg.Storage.DSN, "/srv/tdash/board.db")
	is.Equal(cfg.Log.Level, "debug")
	is.Equal(cfg.Log.Format, LogFormatConsole) // default fills the gap
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	is.NoErr(Default(dir).Save(path))

	t.Setenv("TDASH_STORAGE_BACKEND", "memory")
	t.Setenv("TDASH_LOG_FORMAT", "json")

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.Storage.Backend, BackendMemory)
	is.Equal(cfg.Log.Format, LogFormatJSON)
}

func TestSave_CreatesDirectory(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default(filepath.Dir(path))
	cfg.Storage.Backend = BackendPostgres
	cfg.Storage.DSN = "postgres://localhost/tdash"
	is.NoErr(cfg.Save(path))

	loaded, err := Load(path)
	is.NoErr(err)
	is.Equal(loaded.Storage.Backend, BackendPostgres)
	is.Equal(loaded.Storage.DSN, "postgres://localhost/tdash")
}
