package ui

import (
	"context"
	"fmt"
	"strings"

	"tdash/internal/duedate"
	"tdash/internal/models"
	"tdash/internal/stats"
	"tdash/internal/ui/components"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pane int

const (
	paneProjects pane = iota
	paneTasks
)

// Model represents the UI model
type Model struct {
	Board         *models.Board
	UserName      string
	Projects      components.ProjectListModel
	Tasks         components.TaskListModel
	Details       viewport.Model
	Input         textinput.Model
	Spinner       spinner.Model
	Summary       stats.Summary
	Focus         pane
	Adding        bool
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	Width         int
	Height        int
	Ready         bool
}

// NewModel creates a new UI model
func NewModel(board *models.Board, userName string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 200

	return Model{
		Board:         board,
		UserName:      userName,
		Projects:      components.NewProjectListModel(30, 20),
		Tasks:         components.NewTaskListModel(50, 20),
		Input:         input,
		Spinner:       s,
		IsLoading:     true,
		StatusMessage: "Loading board...",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadBoard(m.Board, false))
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Adding {
			return m.updateInput(msg)
		}
		if m.Tasks.List.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.Focus == paneProjects {
				m.Focus = paneTasks
			} else {
				m.Focus = paneProjects
			}
			return m, nil
		case "r":
			m.IsLoading = true
			m.StatusMessage = "Reloading board..."
			return m, loadBoard(m.Board, true)
		case "s":
			if task := m.Tasks.Selected; task != nil {
				return m, setStatus(m.Board, *task, task.Status.Next())
			}
			return m, nil
		case "1", "2", "3":
			if task := m.Tasks.Selected; task != nil {
				status := models.Statuses[int(msg.String()[0]-'1')]
				return m, setStatus(m.Board, *task, status)
			}
			return m, nil
		case "d":
			if task := m.Tasks.Selected; task != nil {
				return m, deleteTask(m.Board, *task)
			}
			return m, nil
		case "a":
			if m.Projects.Selected == nil {
				m.ErrorMessage = "Create a project first: tdash project create --name <name>"
				return m, nil
			}
			m.Adding = true
			m.Input.SetValue("")
			return m, m.Input.Focus()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		m.Ready = true
		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		return m, spinnerCmd

	case boardLoadedMsg:
		m.IsLoading = false
		m.ErrorMessage = ""
		m.StatusMessage = fmt.Sprintf("Loaded %d projects, %d tasks", len(msg.projects), len(msg.tasks))
		return m, m.refresh()

	case boardChangedMsg:
		m.ErrorMessage = ""
		m.StatusMessage = string(msg)
		return m, m.refresh()

	case errorMsg:
		m.IsLoading = false
		m.ErrorMessage = string(msg)
		m.StatusMessage = "Error"
		// a failed save still leaves the change applied in memory
		return m, m.refresh()
	}

	var cmd tea.Cmd
	if m.Focus == paneProjects {
		before := m.selectedProjectID()
		m.Projects, cmd = m.Projects.Update(msg)
		cmds = append(cmds, cmd)
		if m.selectedProjectID() != before {
			cmds = append(cmds, m.refreshTasks())
		}
	} else {
		m.Tasks, cmd = m.Tasks.Update(msg)
		cmds = append(cmds, cmd)
		m.Details.SetContent(renderDetails(m.Tasks.Selected, m.Board))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.Input.Blur()
		return m, nil
	case "enter":
		m.Adding = false
		m.Input.Blur()
		title := m.Input.Value()
		if m.Projects.Selected == nil {
			return m, nil
		}
		return m, addTask(m.Board, m.Projects.Selected.ID, title)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// refresh recomputes statistics and both lists from the board
func (m *Model) refresh() tea.Cmd {
	projects := m.Board.Projects()
	tasks := m.Board.Tasks()
	m.Summary = stats.Compute(projects, tasks, m.Board.Now())

	cmd := m.Projects.SetProjects(projects, tasks)
	return tea.Batch(cmd, m.refreshTasks())
}

func (m *Model) refreshTasks() tea.Cmd {
	var tasks []models.Task
	if m.Projects.Selected != nil {
		tasks = m.Board.TasksByProject(m.Projects.Selected.ID)
	}
	cmd := m.Tasks.SetTasks(tasks, m.Board.Now())
	m.Details.SetContent(renderDetails(m.Tasks.Selected, m.Board))
	return cmd
}

func (m Model) selectedProjectID() string {
	if m.Projects.Selected == nil {
		return ""
	}
	return m.Projects.Selected.ID
}

func (m *Model) resize() {
	listHeight := m.Height - 8
	if listHeight < 5 {
		listHeight = 5
	}
	projectWidth := m.Width / 3
	taskWidth := m.Width - projectWidth

	m.Projects.List.SetSize(projectWidth, listHeight*2/3)
	m.Tasks.List.SetSize(taskWidth, listHeight*2/3)

	if !m.Ready {
		m.Details = viewport.New(m.Width, listHeight/3)
	} else {
		m.Details.Width = m.Width
		m.Details.Height = listHeight / 3
	}
	m.Details.SetContent(renderDetails(m.Tasks.Selected, m.Board))
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var status string
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	} else {
		status = m.StatusMessage
	}

	statusBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(status)

	title := "tdash"
	if m.UserName != "" {
		title = fmt.Sprintf("tdash - %s", m.UserName)
	}
	titleBar := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Padding(0, 1).
		Render(title)

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render("q quit • tab switch • s next status • 1/2/3 set status • a add • d delete • r reload")

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(m.ErrorMessage)
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		paneStyle(m.Focus == paneProjects).Render(m.Projects.View()),
		paneStyle(m.Focus == paneTasks).Render(m.Tasks.View()),
	)

	inputView := ""
	if m.Adding {
		inputView = lipgloss.NewStyle().Padding(0, 1).Render("New task: " + m.Input.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		RenderSummary(m.Summary),
		body,
		m.Details.View(),
		inputView,
		statusBar,
		errorView,
		help,
	)
}

func paneStyle(focused bool) lipgloss.Style {
	border := lipgloss.Color("238")
	if focused {
		border = lipgloss.Color("39")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// RenderSummary renders the statistics as a row of cards
func RenderSummary(s stats.Summary) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)

	cards := []string{
		card.Render(fmt.Sprintf("Projects\n%d", s.TotalProjects)),
		card.Render(fmt.Sprintf("Tasks\n%d", s.TotalTasks)),
		card.Render(fmt.Sprintf("Todo\n%d", s.ByStatus[models.StatusTodo])),
		card.Render(fmt.Sprintf("In Progress\n%d", s.ByStatus[models.StatusInProgress])),
		card.Render(fmt.Sprintf("Done\n%d", s.ByStatus[models.StatusDone])),
		card.Render(fmt.Sprintf("Completion\n%.1f%%", s.CompletionRate)),
	}

	overdue := card.Render(fmt.Sprintf("Overdue\n%d", s.OverdueCount))
	if s.OverdueCount > 0 {
		overdue = card.BorderForeground(lipgloss.Color("196")).Render(fmt.Sprintf("Overdue\n%d", s.OverdueCount))
	}
	cards = append(cards, overdue)

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderDetails(task *models.Task, board *models.Board) string {
	if task == nil {
		return "No task selected. Press a to add one."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", components.StatusBadge(task.Status), lipgloss.NewStyle().Bold(true).Render(task.Title))
	if task.Description != "" {
		fmt.Fprintf(&b, "%s\n", task.Description)
	}
	if task.DueDate != nil {
		fmt.Fprintf(&b, "Due: %s", duedate.Format(*task.DueDate))
		if task.Overdue(board.Now()) {
			b.WriteString(" (overdue)")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "ID: %s", task.ID)
	return b.String()
}

// Messages
type boardLoadedMsg struct {
	projects []models.Project
	tasks    []models.Task
}
type boardChangedMsg string
type errorMsg string

// Commands
func loadBoard(board *models.Board, reload bool) tea.Cmd {
	return func() tea.Msg {
		if reload {
			if err := board.Reload(context.Background()); err != nil {
				return errorMsg(fmt.Sprintf("Error reloading board: %v", err))
			}
		}
		return boardLoadedMsg{projects: board.Projects(), tasks: board.Tasks()}
	}
}

func setStatus(board *models.Board, task models.Task, status models.Status) tea.Cmd {
	return func() tea.Msg {
		if _, err := board.UpdateTaskStatus(context.Background(), task.ID, status); err != nil {
			return errorMsg(fmt.Sprintf("Error updating task: %v", err))
		}
		return boardChangedMsg(fmt.Sprintf("%q is now %s", task.Title, status.Label()))
	}
}

func deleteTask(board *models.Board, task models.Task) tea.Cmd {
	return func() tea.Msg {
		if err := board.DeleteTask(context.Background(), task.ID); err != nil {
			return errorMsg(fmt.Sprintf("Error deleting task: %v", err))
		}
		return boardChangedMsg(fmt.Sprintf("Deleted %q", task.Title))
	}
}

func addTask(board *models.Board, projectID, title string) tea.Cmd {
	return func() tea.Msg {
		task, err := board.AddTask(context.Background(), models.TaskInput{Title: title, ProjectID: projectID})
		if err != nil {
			return errorMsg(fmt.Sprintf("Error adding task: %v", err))
		}
		return boardChangedMsg(fmt.Sprintf("Added %q", task.Title))
	}
}

// Run starts the dashboard in the alternate screen
func Run(board *models.Board, userName string) error {
	p := tea.NewProgram(NewModel(board, userName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
