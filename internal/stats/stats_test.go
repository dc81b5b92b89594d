package stats

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/matryer/is"

	"tdash/internal/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func task(id, project string, status models.Status, due *time.Time) models.Task {
	return models.Task{ID: id, Title: id, ProjectID: project, Status: status, DueDate: due}
}

func at(t time.Time) *time.Time { return &t }

func TestCompute_Empty(t *testing.T) {
	is := is.New(t)

	s := Compute(nil, nil, now)
	is.Equal(s.TotalProjects, 0)
	is.Equal(s.TotalTasks, 0)
	is.Equal(s.CompletionRate, 0.0) // no division by zero
	is.Equal(s.OverdueCount, 0)
	is.Equal(len(s.ByStatus), 3)
	is.Equal(s.ByStatus[models.StatusTodo], 0)
}

func TestCompute(t *testing.T) {
	is := is.New(t)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	projects := []models.Project{{ID: "p1"}, {ID: "p2"}}
	tasks := []models.Task{
		task("a", "p1", models.StatusTodo, at(yesterday)),
		task("b", "p1", models.StatusInProgress, at(tomorrow)),
		task("c", "p1", models.StatusDone, at(yesterday)), // done tasks are never overdue
		task("d", "p2", models.StatusDone, nil),
	}

	s := Compute(projects, tasks, now)
	is.Equal(s.TotalProjects, 2)
	is.Equal(s.TotalTasks, 4)
	is.Equal(s.ByStatus[models.StatusTodo], 1)
	is.Equal(s.ByStatus[models.StatusInProgress], 1)
	is.Equal(s.ByStatus[models.StatusDone], 2)
	is.Equal(s.Completed, 2)
	is.Equal(s.CompletionRate, 50.0)
	is.Equal(s.OverdueCount, 1)

	// counts always add up to the total
	sum := 0
	for _, n := range s.ByStatus {
		sum += n
	}
	is.Equal(sum, s.TotalTasks)
}

func TestCompute_StatusMixes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		statuses []models.Status
		done     int
		rate     float64
	}{
		{"one of three", []models.Status{models.StatusTodo, models.StatusInProgress, models.StatusDone}, 1, 100.0 / 3},
		{"none done", []models.Status{models.StatusTodo, models.StatusTodo, models.StatusInProgress, models.StatusInProgress}, 0, 0},
		{"all done", []models.Status{models.StatusDone, models.StatusDone, models.StatusDone}, 3, 100},
		{"single todo", []models.Status{models.StatusTodo}, 0, 0},
		{"two of eight", []models.Status{
			models.StatusDone, models.StatusTodo, models.StatusTodo, models.StatusTodo,
			models.StatusInProgress, models.StatusInProgress, models.StatusTodo, models.StatusDone,
		}, 2, 25},
	} {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			tasks := make([]models.Task, len(tc.statuses))
			for i, st := range tc.statuses {
				tasks[i] = task(fmt.Sprintf("t%d", i), "p1", st, nil)
			}

			s := Compute([]models.Project{{ID: "p1"}}, tasks, now)
			is.Equal(s.TotalTasks, len(tc.statuses))
			is.Equal(s.Completed, tc.done)
			is.True(math.Abs(s.CompletionRate-tc.rate) < 1e-9)
			is.True(s.CompletionRate >= 0 && s.CompletionRate <= 100)

			sum := 0
			for _, n := range s.ByStatus {
				sum += n
			}
			is.Equal(sum, s.TotalTasks)
		})
	}
}

func TestCompute_DueExactlyNowIsNotOverdue(t *testing.T) {
	is := is.New(t)
	s := Compute(nil, []models.Task{task("a", "p", models.StatusTodo, at(now))}, now)
	is.Equal(s.OverdueCount, 0)
}

func TestCompute_FollowsTheBoard(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	board := models.NewBoard(models.WithClock(func() time.Time { return now }))
	p, err := board.AddProject(ctx, models.ProjectInput{Name: "p"})
	is.NoErr(err)
	tk, err := board.AddTask(ctx, models.TaskInput{Title: "t", ProjectID: p.ID, DueDate: at(now.Add(-time.Hour))})
	is.NoErr(err)

	is.Equal(Compute(board.Projects(), board.Tasks(), now).OverdueCount, 1)

	_, err = board.UpdateTaskStatus(ctx, tk.ID, models.StatusDone)
	is.NoErr(err)
	s := Compute(board.Projects(), board.Tasks(), now)
	is.Equal(s.OverdueCount, 0)
	is.Equal(s.CompletionRate, 100.0)

	_, err = board.DeleteProject(ctx, p.ID)
	is.NoErr(err)
	s = Compute(board.Projects(), board.Tasks(), now)
	is.Equal(s.TotalProjects, 0)
	is.Equal(s.TotalTasks, 0)
}

func TestForProject(t *testing.T) {
	is := is.New(t)
	p := models.Project{ID: "p1"}
	tasks := []models.Task{
		task("a", "p1", models.StatusDone, nil),
		task("b", "p1", models.StatusTodo, nil),
		task("c", "p1", models.StatusTodo, nil),
		task("d", "p2", models.StatusDone, nil),
	}

	got := ForProject(p, tasks)
	is.Equal(got.Total, 3)
	is.Equal(got.ByStatus[models.StatusDone], 1)
	is.Equal(got.ByStatus[models.StatusTodo], 2)
	is.Equal(got.Percent, 33)

	is.Equal(ForProject(models.Project{ID: "empty"}, tasks).Percent, 0)
}

func TestOverdueTasks(t *testing.T) {
	is := is.New(t)
	tasks := []models.Task{
		task("a", "p", models.StatusTodo, at(now.Add(-time.Minute))),
		task("b", "p", models.StatusTodo, nil),
		task("c", "p", models.StatusInProgress, at(now.Add(-time.Hour))),
	}

	overdue := OverdueTasks(tasks, now)
	is.Equal(len(overdue), 2)
	is.Equal(overdue[0].ID, "a")
	is.Equal(overdue[1].ID, "c")
}
