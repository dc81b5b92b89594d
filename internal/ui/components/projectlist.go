package components

import (
	"fmt"

	"tdash/internal/models"
	"tdash/internal/stats"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProjectItem is a project with its progress
type ProjectItem struct {
	Project  models.Project
	Progress stats.Progress
}

func (i ProjectItem) FilterValue() string {
	return i.Project.Name
}

func (i ProjectItem) Title() string {
	return i.Project.Name
}

func (i ProjectItem) Description() string {
	return fmt.Sprintf("%d tasks - %d%% done", i.Progress.Total, i.Progress.Percent)
}

type ProjectListModel struct {
	List     list.Model
	Selected *models.Project
}

func NewProjectListModel(width, height int) ProjectListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Projects"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(false)
	listModel.SetShowHelp(false)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return ProjectListModel{List: listModel}
}

// SetProjects refreshes the items, keeping the cursor on the same project when possible
func (m *ProjectListModel) SetProjects(projects []models.Project, tasks []models.Task) tea.Cmd {
	var keep string
	if m.Selected != nil {
		keep = m.Selected.ID
	}

	items := make([]list.Item, len(projects))
	cursor := 0
	for i, p := range projects {
		items[i] = ProjectItem{Project: p, Progress: stats.ForProject(p, tasks)}
		if p.ID == keep {
			cursor = i
		}
	}

	cmd := m.List.SetItems(items)
	m.List.Select(cursor)
	m.syncSelected()
	return cmd
}

func (m ProjectListModel) Update(msg tea.Msg) (ProjectListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *ProjectListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(ProjectItem); ok {
		project := item.Project
		m.Selected = &project
	} else {
		m.Selected = nil
	}
}

func (m ProjectListModel) View() string {
	return m.List.View()
}
