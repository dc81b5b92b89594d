package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdash/internal/models"
	"tdash/internal/stats"
	"tdash/internal/ui/components"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects", "p"},
	Short:   "Manage projects",
	Long:    "Create, list, update, and delete projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long:  "Create a new project for organizing tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		// Get project details from flags or prompt
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		projectColor, _ := cmd.Flags().GetString("color")

		// If name wasn't provided via flag, prompt for it
		if name == "" {
			fmt.Print("Project name: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				name = scanner.Text()
			}
		}

		project, err := ws.board.AddProject(cmd.Context(), models.ProjectInput{
			Name:        name,
			Description: description,
			Color:       projectColor,
		})
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		color.Green("Project created successfully!")
		fmt.Printf("ID: %s\n", project.ID)
		fmt.Printf("Name: %s\n", project.Name)
		if project.Description != "" {
			fmt.Printf("Description: %s\n", project.Description)
		}
		fmt.Printf("Color: %s\n", project.Color)

		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Long:  "List all projects with their task counts and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		projects := ws.board.Projects()
		if len(projects) == 0 {
			fmt.Println("No projects found. Create one with 'tdash project create'")
			return nil
		}

		tasks := ws.board.Tasks()
		fmt.Printf("Projects:\n\n")
		for i, project := range projects {
			progress := stats.ForProject(project, tasks)
			fmt.Printf("%d. %s (ID: %s)\n", i+1, color.New(color.Bold).Sprint(project.Name), project.ID)
			if project.Description != "" {
				fmt.Printf("   Description: %s\n", project.Description)
			}
			fmt.Printf("   Progress: %s\n", progressLine(progress))
			fmt.Printf("   Updated: %s\n", project.UpdatedAt.Format(time.RFC1123))
			fmt.Println()
		}

		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project]",
	Short: "Show project details",
	Long:  "Show a project, its progress and its tasks. The project may be given by name or id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		project, err := ws.board.FindProject(args[0])
		if err != nil {
			return err
		}

		tasks := ws.board.TasksByProject(project.ID)
		progress := stats.ForProject(project, tasks)

		fmt.Printf("Project Details:\n\n")
		fmt.Printf("ID: %s\n", project.ID)
		fmt.Printf("Name: %s\n", project.Name)
		fmt.Printf("Description: %s\n", project.Description)
		fmt.Printf("Color: %s\n", project.Color)
		fmt.Printf("Created: %s\n", project.CreatedAt.Format(time.RFC1123))
		fmt.Printf("Updated: %s\n", project.UpdatedAt.Format(time.RFC1123))
		fmt.Printf("Progress: %s\n", progressLine(progress))

		if len(tasks) == 0 {
			fmt.Println("\nNo tasks yet. Add one with 'tdash task add'")
			return nil
		}

		fmt.Println("\nTasks:")
		components.SortTasks(tasks)
		printTasks(tasks, ws.board.Now(), nil)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update [project]",
	Short: "Update project",
	Long:  "Update a project's name, description or color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		project, err := ws.board.FindProject(args[0])
		if err != nil {
			return err
		}

		var patch models.ProjectPatch
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			patch.Name = &name
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			patch.Description = &description
		}
		if cmd.Flags().Changed("color") {
			projectColor, _ := cmd.Flags().GetString("color")
			patch.Color = &projectColor
		}

		// Only update if something has changed
		if patch.Empty() {
			fmt.Println("No changes to make. Project remains unchanged.")
			return nil
		}

		updated, err := ws.board.UpdateProject(cmd.Context(), project.ID, patch)
		if err != nil {
			return fmt.Errorf("error updating project: %w", err)
		}

		color.Green("Project updated successfully!")
		fmt.Printf("ID: %s\n", updated.ID)
		fmt.Printf("Name: %s\n", updated.Name)
		fmt.Printf("Description: %s\n", updated.Description)
		fmt.Printf("Color: %s\n", updated.Color)

		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project]",
	Short: "Delete project",
	Long:  "Delete a project together with all of its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		project, err := ws.board.FindProject(args[0])
		if err != nil {
			return err
		}

		// Confirm deletion
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			count := len(ws.board.TasksByProject(project.ID))
			fmt.Printf("Delete project '%s' and its %d task(s)? (y/n): ", project.Name, count)
			var confirmation string
			_, err = fmt.Scanln(&confirmation)
			if err != nil || strings.ToLower(confirmation) != "y" {
				fmt.Println("Project deletion cancelled.")
				return nil
			}
		}

		removed, err := ws.board.DeleteProject(cmd.Context(), project.ID)
		if err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}

		color.Green("Project deleted successfully!")
		if removed > 0 {
			color.Yellow("Removed %d task(s) with it.", removed)
		}

		return nil
	},
}

func progressLine(p stats.Progress) string {
	return fmt.Sprintf("%d%% done (%d todo, %d in progress, %d done)",
		p.Percent,
		p.ByStatus[models.StatusTodo],
		p.ByStatus[models.StatusInProgress],
		p.ByStatus[models.StatusDone],
	)
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectCreateCmd.Flags().String("name", "", "Project name")
	projectCreateCmd.Flags().String("description", "", "Project description")
	projectCreateCmd.Flags().String("color", "", "Display color, picked from a palette when empty")

	projectUpdateCmd.Flags().String("name", "", "Project name")
	projectUpdateCmd.Flags().String("description", "", "Project description")
	projectUpdateCmd.Flags().String("color", "", "Display color")

	projectDeleteCmd.Flags().Bool("force", false, "Force deletion without confirmation")
}
