package commands

import (
	"github.com/spf13/cobra"

	"tdash/internal/ui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		var name string
		if user, err := ws.session.GetUser(cmd.Context()); err == nil {
			name = displayName(user)
		}

		return ui.Run(ws.board, name)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
