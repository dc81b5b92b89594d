package models

import (
	"context"
	"fmt"
	"time"
)

type seedTask struct {
	title       string
	description string
	status      Status
	due         string
}

type seedProject struct {
	name        string
	description string
	color       string
	tasks       []seedTask
}

var demoProjects = []seedProject{
	{
		name:        "Website Redesign",
		description: "Complete overhaul of the company website",
		color:       "hsl(217, 91%, 60%)",
		tasks: []seedTask{
			{"Design new homepage layout", "Create wireframes and mockups for the new homepage", StatusInProgress, "2024-10-15"},
			{"Set up development environment", "Configure all necessary tools and dependencies", StatusDone, ""},
		},
	},
	{
		name:        "Mobile App",
		description: "Development of the mobile application",
		color:       "hsl(262, 83%, 58%)",
		tasks: []seedTask{
			{"Create user authentication flow", "Implement login and registration functionality", StatusTodo, "2024-10-20"},
		},
	},
}

// SeedDemo adds the demo projects and their tasks through the regular add operations.
// It returns the number of projects and tasks created.
func SeedDemo(ctx context.Context, b *Board) (int, int, error) {
	var projects, tasks int

	for _, sp := range demoProjects {
		project, err := b.AddProject(ctx, ProjectInput{
			Name:        sp.name,
			Description: sp.description,
			Color:       sp.color,
		})
		if err != nil {
			return projects, tasks, fmt.Errorf("seed project %q: %w", sp.name, err)
		}
		projects++

		for _, st := range sp.tasks {
			in := TaskInput{
				Title:       st.title,
				Description: st.description,
				Status:      st.status,
				ProjectID:   project.ID,
			}
			if st.due != "" {
				due, err := time.ParseInLocation(time.DateOnly, st.due, time.Local)
				if err != nil {
					return projects, tasks, err
				}
				in.DueDate = &due
			}

			if _, err := b.AddTask(ctx, in); err != nil {
				return projects, tasks, fmt.Errorf("seed task %q: %w", st.title, err)
			}
			tasks++
		}
	}

	return projects, tasks, nil
}
