package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdash/internal/models"
	"tdash/internal/stats"
	"tdash/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show board statistics",
	Long:  "Show project and task totals, counts per status, completion rate and overdue tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		projects := ws.board.Projects()
		tasks := ws.board.Tasks()
		summary := stats.Compute(projects, tasks, ws.board.Now())

		fmt.Println(ui.RenderSummary(summary))

		if summary.OverdueCount > 0 {
			color.Red("\n%d overdue task(s):", summary.OverdueCount)
			printTasks(stats.OverdueTasks(tasks, ws.board.Now()), ws.board.Now(), projectNames(projects))
		}

		if verbose, _ := cmd.Flags().GetBool("projects"); verbose && len(projects) > 0 {
			fmt.Println("\nBy project:")
			for _, p := range projects {
				fmt.Printf("  %-24s %s\n", p.Name, progressLine(stats.ForProject(p, tasks)))
			}
		}

		return nil
	},
}

func projectNames(projects []models.Project) map[string]string {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("projects", false, "Also show progress per project")
}
