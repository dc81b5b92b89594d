package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"

	"tdash/internal/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and then every message its command produces
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case boardLoadedMsg, boardChangedMsg, errorMsg:
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

// press updates the model without running the returned command
func press(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func setup(t *testing.T) (Model, *models.Board) {
	t.Helper()
	ctx := context.Background()
	board := models.NewBoard(models.WithClock(func() time.Time { return now }))
	p, err := board.AddProject(ctx, models.ProjectInput{Name: "Website"})
	if err != nil {
		t.Fatal(err)
	}
	yesterday := now.Add(-24 * time.Hour)
	if _, err := board.AddTask(ctx, models.TaskInput{Title: "Design", ProjectID: p.ID, DueDate: &yesterday}); err != nil {
		t.Fatal(err)
	}

	m := NewModel(board, "Ada")
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = send(t, m, loadBoard(board, false)())
	return m, board
}

func TestModel_Loads(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t)

	is.True(!m.IsLoading)
	is.Equal(m.Summary.TotalProjects, 1)
	is.Equal(m.Summary.TotalTasks, 1)
	is.Equal(m.Summary.OverdueCount, 1)
	is.Equal(m.Projects.Selected.Name, "Website")
	is.Equal(m.Tasks.Selected.Title, "Design")

	view := m.View()
	is.True(strings.Contains(view, "tdash - Ada"))
	is.True(strings.Contains(view, "Overdue"))
}

func TestModel_CycleStatus(t *testing.T) {
	is := is.New(t)
	m, board := setup(t)

	m = send(t, m, key("s"))
	is.Equal(board.Tasks()[0].Status, models.StatusInProgress)
	is.Equal(m.Summary.ByStatus[models.StatusInProgress], 1)

	m = send(t, m, key("3"))
	is.Equal(board.Tasks()[0].Status, models.StatusDone)
	is.Equal(m.Summary.CompletionRate, 100.0)
	is.Equal(m.Summary.OverdueCount, 0) // done tasks are not overdue
}

func TestModel_AddAndDelete(t *testing.T) {
	is := is.New(t)
	m, board := setup(t)

	m = press(m, key("a"))
	is.True(m.Adding)
	m = press(m, key("Write copy"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	is.True(!m.Adding)
	is.Equal(len(board.Tasks()), 2)
	is.Equal(m.Summary.TotalTasks, 2)

	m = send(t, m, key("d"))
	is.Equal(len(board.Tasks()), 1)
	is.Equal(m.Summary.TotalTasks, 1)
}

func TestModel_AddEmptyTitleShowsError(t *testing.T) {
	is := is.New(t)
	m, board := setup(t)

	m = press(m, key("a"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	is.True(m.ErrorMessage != "")
	is.Equal(len(board.Tasks()), 1)
}

func TestModel_Quit(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t)

	_, cmd := m.Update(key("q"))
	is.True(cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	is.True(ok)
}
