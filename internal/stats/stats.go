// Package stats derives dashboard numbers from the board. Nothing here is
// cached; callers recompute after every change.
package stats

import (
	"math"
	"time"

	"tdash/internal/models"
)

// Summary holds the board-wide statistics
type Summary struct {
	TotalProjects int
	TotalTasks    int
	ByStatus      map[models.Status]int
	Completed     int

	// Percentage of tasks that are done, 0 when there are no tasks
	CompletionRate float64

	// Tasks with a due date before now that are not done
	OverdueCount int
}

// Compute derives the summary from the given projects and tasks
func Compute(projects []models.Project, tasks []models.Task, now time.Time) Summary {
	s := Summary{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
		ByStatus:      make(map[models.Status]int, len(models.Statuses)),
	}
	for _, status := range models.Statuses {
		s.ByStatus[status] = 0
	}

	for _, t := range tasks {
		s.ByStatus[t.Status]++
		if t.Overdue(now) {
			s.OverdueCount++
		}
	}

	s.Completed = s.ByStatus[models.StatusDone]
	if s.TotalTasks > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.TotalTasks) * 100
	}

	return s
}

// Progress is the per-project breakdown shown next to a project
type Progress struct {
	ProjectID string
	Total     int
	ByStatus  map[models.Status]int

	// Rounded percentage of done tasks
	Percent int
}

// ForProject counts the tasks that belong to project
func ForProject(project models.Project, tasks []models.Task) Progress {
	p := Progress{
		ProjectID: project.ID,
		ByStatus:  make(map[models.Status]int, len(models.Statuses)),
	}
	for _, status := range models.Statuses {
		p.ByStatus[status] = 0
	}

	for _, t := range tasks {
		if t.ProjectID != project.ID {
			continue
		}
		p.Total++
		p.ByStatus[t.Status]++
	}

	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.ByStatus[models.StatusDone]) / float64(p.Total) * 100))
	}
	return p
}

// OverdueTasks returns the overdue tasks in their original order
func OverdueTasks(tasks []models.Task, now time.Time) []models.Task {
	var overdue []models.Task
	for _, t := range tasks {
		if t.Overdue(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}
