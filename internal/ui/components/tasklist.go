package components

import (
	"fmt"
	"sort"
	"time"

	"tdash/internal/duedate"
	"tdash/internal/models"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Order: In Progress, Todo, Done
var statusOrder = map[models.Status]int{
	models.StatusInProgress: 0,
	models.StatusTodo:       1,
	models.StatusDone:       2,
}

// TaskItem represents a task item in the list
type TaskItem struct {
	Task models.Task
	Now  time.Time
}

// FilterValue returns the filter value for the task item
func (i TaskItem) FilterValue() string {
	return i.Task.Title
}

// Title returns the title for the task item
func (i TaskItem) Title() string {
	return fmt.Sprintf("%s %s", StatusBadge(i.Task.Status), i.Task.Title)
}

// Description returns the description for the task item
func (i TaskItem) Description() string {
	desc := i.Task.Status.Label()
	if i.Task.DueDate != nil {
		due := "due " + duedate.Format(*i.Task.DueDate)
		if i.Task.Overdue(i.Now) {
			due = overdueStyle.Render("overdue " + duedate.Format(*i.Task.DueDate))
		}
		desc += " - " + due
	}
	return desc
}

var overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// StatusBadge is a one-character marker for a status
func StatusBadge(s models.Status) string {
	switch s {
	case models.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
	case models.StatusInProgress:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("◐")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("○")
	}
}

// TaskListModel represents the task list model
type TaskListModel struct {
	List     list.Model
	Tasks    []models.Task
	Selected *models.Task
}

// NewTaskListModel creates a new task list model
func NewTaskListModel(width, height int) TaskListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Tasks"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.SetShowHelp(false)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return TaskListModel{
		List:  listModel,
		Tasks: []models.Task{},
	}
}

// SortTasks orders tasks by status, then by creation time
func SortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Status != tasks[j].Status {
			return statusOrder[tasks[i].Status] < statusOrder[tasks[j].Status]
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

// SetTasks sets the tasks in the list, keeping the cursor on the same task when possible
func (m *TaskListModel) SetTasks(tasks []models.Task, now time.Time) tea.Cmd {
	SortTasks(tasks)
	m.Tasks = tasks

	var keep string
	if m.Selected != nil {
		keep = m.Selected.ID
	}

	// Create items
	items := make([]list.Item, len(tasks))
	cursor := 0
	for i, task := range tasks {
		items[i] = TaskItem{Task: task, Now: now}
		if task.ID == keep {
			cursor = i
		}
	}

	cmd := m.List.SetItems(items)
	m.List.Select(cursor)
	m.syncSelected()
	return cmd
}

// Update handles task list updates
func (m TaskListModel) Update(msg tea.Msg) (TaskListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *TaskListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(TaskItem); ok {
		task := item.Task
		m.Selected = &task
	} else {
		m.Selected = nil
	}
}

// View renders the task list
func (m TaskListModel) View() string {
	return m.List.View()
}
