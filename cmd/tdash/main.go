package main

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"

	"tdash/internal/commands"
	"tdash/internal/config"
	"tdash/internal/logging"
)

func main() {
	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
		os.Exit(1)
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(filepath.Join(configDir, "config.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		// Continue with defaults so 'tdash config' can repair the file
		cfg = config.Default(configDir)
	}

	if err := logging.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using default logging\n", err)
		// A bad log setting must not lock out 'tdash config set'
		cfg.Log = config.Default(configDir).Log
		if err := logging.Init(cfg.Log); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
			os.Exit(1)
		}
	}

	// Execute root command; it prints its own errors
	if err := commands.Execute(cfg); err != nil {
		os.Exit(1)
	}
}
