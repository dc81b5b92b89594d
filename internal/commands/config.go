package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tdash/internal/config"
)

var (
	// Variables to hold flag values
	backend   string
	dsn       string
	dataDir   string
	logLevel  string
	logFormat string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tdash configuration",
	Long:  "View and update tdash configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display specific configuration value or all configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// If no argument is provided, show all config
		if len(args) == 0 {
			fmt.Println("Current configuration:")
			fmt.Printf("Storage backend: %s\n", cfg.Storage.Backend)
			if cfg.Storage.DSN != "" {
				fmt.Printf("Storage DSN: %s\n", cfg.Storage.DSN)
			}
			fmt.Printf("Data directory: %s\n", cfg.DataDir)
			fmt.Printf("Log level: %s\n", cfg.Log.Level)
			fmt.Printf("Log format: %s\n", cfg.Log.Format)
			return nil
		}

		// Show specific config value
		switch args[0] {
		case "backend":
			fmt.Println(cfg.Storage.Backend)
		case "dsn":
			fmt.Println(cfg.Storage.DSN)
		case "data-dir":
			fmt.Println(cfg.DataDir)
		case "log-level":
			fmt.Println(cfg.Log.Level)
		case "log-format":
			fmt.Println(cfg.Log.Format)
		default:
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  "Update configuration settings like the storage backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		updated, err := applyConfigFlags(cfg)
		if err != nil {
			return err
		}
		if !updated {
			fmt.Println("No changes were made to the configuration.")
			return nil
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		color.Green("Configuration updated successfully.")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		// Check if config file exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Println("Configuration file already exists.")
			fmt.Println("Use 'tdash config set' to modify existing configuration.")
			return nil
		}

		cfg := config.Default(filepath.Dir(configPath))
		if _, err := applyConfigFlags(cfg); err != nil {
			return err
		}

		if err := cfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		color.Green("Configuration initialized successfully.")
		fmt.Printf("Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display paths to the configuration file and the stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		globalConfigDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
		globalConfigPath := filepath.Join(globalConfigDir, "config.json")

		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		fmt.Println("Config paths:")
		fmt.Printf("- Config directory: %s\n", globalConfigDir)
		fmt.Printf("- Config file: %s\n", globalConfigPath)
		fmt.Printf("- Data directory: %s\n", cfg.DataDir)

		switch cfg.Storage.Backend {
		case config.BackendFile:
			fmt.Printf("- Board file: %s\n", filepath.Join(cfg.DataDir, "projects.json"))
			fmt.Printf("- User file: %s\n", filepath.Join(cfg.DataDir, "user.json"))
		case config.BackendSQLite:
			path := cfg.Storage.DSN
			if path == "" {
				path = filepath.Join(cfg.DataDir, "tdash.db")
			}
			fmt.Printf("- Database: %s\n", path)
		}

		// Check existence
		fmt.Println("\nExistence status:")
		if _, err := os.Stat(globalConfigPath); os.IsNotExist(err) {
			fmt.Println("- Config file: Does not exist")
		} else {
			fmt.Println("- Config file: Exists")
		}

		return nil
	},
}

// applyConfigFlags copies the set flags into cfg and reports whether anything changed.
// Nothing is applied when one of the values is unknown.
func applyConfigFlags(cfg *config.Config) (bool, error) {
	if err := checkConfigFlags(); err != nil {
		return false, err
	}

	updated := false
	set := func(target *string, value, label string) {
		if value == "" || *target == value {
			return
		}
		fmt.Printf("%s updated: %s -> %s\n", label, *target, value)
		*target = value
		updated = true
	}

	set(&cfg.Storage.Backend, backend, "Storage backend")
	set(&cfg.Storage.DSN, dsn, "Storage DSN")
	set(&cfg.DataDir, dataDir, "Data directory")
	set(&cfg.Log.Level, strings.ToLower(logLevel), "Log level")
	set(&cfg.Log.Format, logFormat, "Log format")
	return updated, nil
}

// checkConfigFlags rejects values that would keep tdash from starting
func checkConfigFlags() error {
	switch backend {
	case "", config.BackendFile, config.BackendSQLite, config.BackendPostgres, config.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q: use file, sqlite, postgres or memory", backend)
	}

	if logLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(logLevel)); err != nil {
			return fmt.Errorf("unknown log level %q: use debug, info, warn or error", logLevel)
		}
	}

	switch logFormat {
	case "", config.LogFormatConsole, config.LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q: use console or json", logFormat)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	for _, c := range []*cobra.Command{configSetCmd, configInitCmd} {
		c.Flags().StringVar(&backend, "backend", "", "Storage backend: file, sqlite, postgres or memory")
		c.Flags().StringVar(&dsn, "dsn", "", "sqlite path or postgres:// URL")
		c.Flags().StringVar(&dataDir, "data-dir", "", "Directory for stored data")
		c.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
		c.Flags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
	}
}
