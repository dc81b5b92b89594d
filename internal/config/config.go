package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Log formats
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config represents the application configuration.
// Every field can be overridden from the environment.
type Config struct {
	// Directory holding the file store and the default sqlite database
	DataDir string `json:"data_dir,omitempty" env:"TDASH_DATA_DIR"`

	Storage StorageConfig `json:"storage"`
	Log     LogConfig     `json:"log"`
}

// StorageConfig selects where the board and the user profile live
type StorageConfig struct {
	// One of file, sqlite, postgres, memory
	Backend string `json:"backend" env:"TDASH_STORAGE_BACKEND" env-default:"file"`

	// sqlite file path or postgres:// URL
	DSN string `json:"dsn,omitempty" env:"TDASH_DSN"`
}

type LogConfig struct {
	Level  string `json:"level" env:"TDASH_LOG_LEVEL" env-default:"warn"`
	Format string `json:"format" env:"TDASH_LOG_FORMAT" env-default:"console"`
}

// GetGlobalConfigDir returns ~/.tdash
func GetGlobalConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tdash"), nil
}

// GetGlobalConfigPath returns ~/.tdash/config.json
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load loads the configuration from the given file path
func Load(path string) (*Config, error) {
	var cfg Config

	// If config file doesn't exist, use defaults and the environment
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}

	return &cfg, nil
}

// LoadGlobalConfig loads ~/.tdash/config.json
func LoadGlobalConfig() (*Config, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Default returns the configuration used when no file exists
func Default(configDir string) *Config {
	return &Config{
		DataDir: configDir,
		Storage: StorageConfig{Backend: BackendFile},
		Log:     LogConfig{Level: "warn", Format: LogFormatConsole},
	}
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveGlobalConfig saves to ~/.tdash/config.json
func SaveGlobalConfig(cfg *Config) error {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return err
	}
	return cfg.Save(path)
}
