package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdash/internal/config"
	"tdash/internal/logging"
	"tdash/internal/models"
	"tdash/internal/storage"
)

var globalConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "tdash",
	Short: "tdash - projects, tasks and progress from the terminal",
	Long: `tdash keeps a small board of projects and tasks on your machine.
Track status, due dates and overall progress from the command line or the interactive dashboard.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute(cfg *config.Config) error {
	globalConfig = cfg
	err := rootCmd.Execute()
	if err != nil {
		color.Red("Error: %v", userMessage(err))
	}
	return err
}

// workspace is the opened state every board command works on
type workspace struct {
	kv      storage.KV
	board   *models.Board
	session *models.SessionStore
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg := globalConfig
	if cfg == nil {
		loaded, err := config.LoadGlobalConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	kv, err := storage.Open(ctx, cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	board, err := models.LoadBoard(ctx, kv, models.WithLogger(*logging.L()))
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &workspace{
		kv:      kv,
		board:   board,
		session: models.NewSessionStore(kv),
	}, nil
}

func (w *workspace) Close() {
	if err := w.kv.Close(); err != nil {
		logging.L().Error().
			Err(err).
			Msg("failed to close storage")
	}
}

// userMessage turns domain errors into short messages for the terminal
func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrProjectNotFound):
		return fmt.Sprintf("%v (see 'tdash project list')", err)
	case errors.Is(err, models.ErrTaskNotFound):
		return fmt.Sprintf("%v (see 'tdash task list')", err)
	case errors.Is(err, models.ErrAmbiguousID):
		return fmt.Sprintf("%v, use more characters of the id", err)
	case errors.Is(err, models.ErrInvalidStatus):
		return fmt.Sprintf("%v (use todo, in_progress or done)", err)
	}
	return err.Error()
}
