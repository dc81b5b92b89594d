package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdash/internal/duedate"
	"tdash/internal/models"
	"tdash/internal/stats"
	"tdash/internal/ui/components"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
	Long:    "Add, list, update, and delete tasks inside projects",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task to a project",
	Long: `Add a task to a project. The due date accepts forms such as
today, tomorrow, fri, "in 3 days", 2w or 2025-10-15.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		projectRef, _ := cmd.Flags().GetString("project")
		project, err := ws.board.FindProject(projectRef)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		if len(args) == 1 {
			title = args[0]
		}
		description, _ := cmd.Flags().GetString("description")

		in := models.TaskInput{
			Title:       title,
			Description: description,
			ProjectID:   project.ID,
		}

		if raw, _ := cmd.Flags().GetString("status"); raw != "" {
			status, err := models.ParseStatus(raw)
			if err != nil {
				return err
			}
			in.Status = status
		}

		if raw, _ := cmd.Flags().GetString("due"); raw != "" {
			due, err := duedate.Parse(raw, ws.board.Now())
			if err != nil {
				return fmt.Errorf("due date %q: %w", raw, err)
			}
			in.DueDate = &due
		}

		task, err := ws.board.AddTask(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("error adding task: %w", err)
		}

		color.Green("Task added to %s", project.Name)
		printTask(task, ws.board.Now())
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  "List tasks, optionally filtered by project, status or overdue",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		var projectID string
		if ref, _ := cmd.Flags().GetString("project"); ref != "" {
			project, err := ws.board.FindProject(ref)
			if err != nil {
				return err
			}
			projectID = project.ID
		}

		var status models.Status
		if raw, _ := cmd.Flags().GetString("status"); raw != "" {
			if status, err = models.ParseStatus(raw); err != nil {
				return err
			}
		}

		var tasks []models.Task
		switch {
		case projectID != "" && status != "":
			tasks = filterStatus(ws.board.TasksByProject(projectID), status)
		case projectID != "":
			tasks = ws.board.TasksByProject(projectID)
		case status != "":
			tasks = ws.board.TasksByStatus(status)
		default:
			tasks = ws.board.Tasks()
		}

		if overdue, _ := cmd.Flags().GetBool("overdue"); overdue {
			tasks = stats.OverdueTasks(tasks, ws.board.Now())
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		names := make(map[string]string)
		for _, p := range ws.board.Projects() {
			names[p.ID] = p.Name
		}

		components.SortTasks(tasks)
		printTasks(tasks, ws.board.Now(), names)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task]",
	Short: "Show task details",
	Long:  "Show a task. The id may be shortened to any unique prefix.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		task, err := ws.board.FindTask(args[0])
		if err != nil {
			return err
		}

		printTask(task, ws.board.Now())
		if project, err := ws.board.Project(task.ProjectID); err == nil {
			fmt.Printf("Project: %s\n", project.Name)
		}
		fmt.Printf("Created: %s\n", task.CreatedAt.Format(time.RFC1123))
		fmt.Printf("Updated: %s\n", task.UpdatedAt.Format(time.RFC1123))
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [task]",
	Short: "Update a task",
	Long:  "Change any of a task's fields; fields without a flag are left as they are",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		task, err := ws.board.FindTask(args[0])
		if err != nil {
			return err
		}

		var patch models.TaskPatch
		flags := cmd.Flags()
		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			patch.Title = &title
		}
		if flags.Changed("description") {
			description, _ := flags.GetString("description")
			patch.Description = &description
		}
		if flags.Changed("status") {
			raw, _ := flags.GetString("status")
			status, err := models.ParseStatus(raw)
			if err != nil {
				return err
			}
			patch.Status = &status
		}
		if flags.Changed("due") {
			raw, _ := flags.GetString("due")
			due, err := duedate.Parse(raw, ws.board.Now())
			if err != nil {
				return fmt.Errorf("due date %q: %w", raw, err)
			}
			patch.DueDate = &due
		}
		patch.ClearDueDate, _ = flags.GetBool("clear-due")
		if flags.Changed("project") {
			ref, _ := flags.GetString("project")
			project, err := ws.board.FindProject(ref)
			if err != nil {
				return err
			}
			patch.ProjectID = &project.ID
		}

		if patch.Empty() {
			fmt.Println("No changes to make. Task remains unchanged.")
			return nil
		}

		updated, err := ws.board.UpdateTask(cmd.Context(), task.ID, patch)
		if err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}

		color.Green("Task updated successfully!")
		printTask(updated, ws.board.Now())
		return nil
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "status [task] [todo|in_progress|done]",
	Short: "Set the status of a task",
	Long:  "Move a task to any status. Without a status the task moves to the next one.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		task, err := ws.board.FindTask(args[0])
		if err != nil {
			return err
		}

		status := task.Status.Next()
		if len(args) == 2 {
			status, err = models.ParseStatus(args[1])
			if err != nil {
				return err
			}
		}

		updated, err := ws.board.UpdateTaskStatus(cmd.Context(), task.ID, status)
		if err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}

		fmt.Printf("%s %s -> %s\n", updated.Title, task.Status.Label(), statusColor(updated.Status).Sprint(updated.Status.Label()))
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer ws.Close()

		task, err := ws.board.FindTask(args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Are you sure you want to delete task '%s'? (y/n): ", task.Title)
			var confirmation string
			_, err = fmt.Scanln(&confirmation)
			if err != nil || strings.ToLower(confirmation) != "y" {
				fmt.Println("Task deletion cancelled.")
				return nil
			}
		}

		if err := ws.board.DeleteTask(cmd.Context(), task.ID); err != nil {
			return fmt.Errorf("error deleting task: %w", err)
		}

		color.Green("Task deleted successfully!")
		return nil
	},
}

// filterStatus narrows a project's tasks to one status
func filterStatus(tasks []models.Task, status models.Status) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusDone:
		return color.New(color.FgGreen)
	case models.StatusInProgress:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}

func dueText(t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	if t.Overdue(now) {
		return color.RedString("overdue since %s", duedate.Format(*t.DueDate))
	}
	return "due " + duedate.Format(*t.DueDate)
}

func printTask(t models.Task, now time.Time) {
	fmt.Printf("ID: %s\n", t.ID)
	fmt.Printf("Title: %s\n", t.Title)
	if t.Description != "" {
		fmt.Printf("Description: %s\n", t.Description)
	}
	fmt.Printf("Status: %s\n", statusColor(t.Status).Sprint(t.Status.Label()))
	if due := dueText(t, now); due != "" {
		fmt.Printf("Due: %s\n", due)
	}
}

// printTasks prints one line per task; names maps project ids to names and may be nil
func printTasks(tasks []models.Task, now time.Time, names map[string]string) {
	for _, t := range tasks {
		line := fmt.Sprintf("  %s  %-12s %s", t.ID, statusColor(t.Status).Sprint(t.Status.Label()), t.Title)
		if name, ok := names[t.ProjectID]; ok {
			line += color.New(color.Faint).Sprintf("  [%s]", name)
		}
		if due := dueText(t, now); due != "" {
			line += "  " + due
		}
		fmt.Println(line)
	}
}

func init() {
	rootCmd.AddCommand(taskCmd)

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskStatusCmd)
	taskCmd.AddCommand(taskDeleteCmd)

	taskAddCmd.Flags().StringP("project", "p", "", "Project name or id")
	taskAddCmd.Flags().String("title", "", "Task title")
	taskAddCmd.Flags().String("description", "", "Task description")
	taskAddCmd.Flags().String("status", "", "Initial status (todo, in_progress, done)")
	taskAddCmd.Flags().String("due", "", "Due date")
	taskAddCmd.MarkFlagRequired("project")

	taskListCmd.Flags().StringP("project", "p", "", "Only tasks of this project")
	taskListCmd.Flags().StringP("status", "s", "", "Only tasks in this status")
	taskListCmd.Flags().Bool("overdue", false, "Only overdue tasks")

	taskUpdateCmd.Flags().String("title", "", "Task title")
	taskUpdateCmd.Flags().String("description", "", "Task description")
	taskUpdateCmd.Flags().String("status", "", "Status (todo, in_progress, done)")
	taskUpdateCmd.Flags().String("due", "", "Due date")
	taskUpdateCmd.Flags().Bool("clear-due", false, "Remove the due date")
	taskUpdateCmd.Flags().String("project", "", "Move the task to another project")

	taskDeleteCmd.Flags().Bool("force", false, "Force deletion without confirmation")
}
