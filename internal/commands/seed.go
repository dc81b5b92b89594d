package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdash/internal/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add demo projects and tasks",
	Long:  "Add two demo projects with a few tasks, useful for trying out the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		projects, tasks, err := models.SeedDemo(cmd.Context(), ws.board)
		if err != nil {
			return fmt.Errorf("error seeding board: %w", err)
		}

		color.Green("Added %d projects and %d tasks", projects, tasks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
