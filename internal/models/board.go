package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tdash/internal/storage"
)

// Board is the project and task store. Every successful mutation is
// written to the attached KV as a single blob.
type Board struct {
	projects []Project
	tasks    []Task

	ids *IDGenerator
	now func() time.Time
	kv  storage.KV
	log zerolog.Logger

	// Mutex for concurrent access
	mu sync.RWMutex
}

// boardState is the persisted shape of the board
type boardState struct {
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
}

// Option configures a Board
type Option func(*Board)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(ids *IDGenerator) Option {
	return func(b *Board) { b.ids = ids }
}

// WithStore persists the board to kv after every mutation
func WithStore(kv storage.KV) Option {
	return func(b *Board) { b.kv = kv }
}

func WithLogger(log zerolog.Logger) Option {
	return func(b *Board) { b.log = log }
}

// NewBoard creates an empty board
func NewBoard(opts ...Option) *Board {
	b := &Board{
		projects: []Project{},
		tasks:    []Task{},
		ids:      NewIDGenerator(),
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LoadBoard creates a board backed by kv and fills it from the stored blob.
// A missing blob yields an empty board.
func LoadBoard(ctx context.Context, kv storage.KV, opts ...Option) (*Board, error) {
	b := NewBoard(append(opts, WithStore(kv))...)
	if err := b.Reload(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Reload replaces the in-memory state with what is stored
func (b *Board) Reload(ctx context.Context) error {
	if b.kv == nil {
		return nil
	}

	data, err := b.kv.Get(ctx, storage.KeyBoard)
	if errors.Is(err, storage.ErrNotFound) {
		data = nil
	} else if err != nil {
		return fmt.Errorf("failed to read board: %w", err)
	}

	state := boardState{Projects: []Project{}, Tasks: []Task{}}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("failed to decode board: %w", err)
		}
	}
	if err := state.check(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.projects = state.Projects
	b.tasks = state.Tasks
	if b.projects == nil {
		b.projects = []Project{}
	}
	if b.tasks == nil {
		b.tasks = []Task{}
	}
	for _, p := range b.projects {
		b.ids.Reserve(p.ID)
	}
	for _, t := range b.tasks {
		b.ids.Reserve(t.ID)
	}

	b.log.Debug().
		Int("projects", len(b.projects)).
		Int("tasks", len(b.tasks)).
		Msg("board loaded")
	return nil
}

// check validates the invariants of a stored board: unique ids, non-empty
// names and titles, and tasks that point at a live project
func (s boardState) check() error {
	live := make(map[string]struct{}, len(s.Projects))
	for _, p := range s.Projects {
		if _, dup := live[p.ID]; dup {
			return fmt.Errorf("project %s: %w", p.ID, ErrDuplicateID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("project %s: %w", p.ID, ErrEmptyName)
		}
		live[p.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(s.Tasks))
	for _, t := range s.Tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("task %s: %w", t.ID, ErrDuplicateID)
		}
		if _, dup := live[t.ID]; dup {
			return fmt.Errorf("task %s: %w", t.ID, ErrDuplicateID)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("task %s: %w", t.ID, ErrEmptyTitle)
		}
		if _, ok := live[t.ProjectID]; !ok {
			return fmt.Errorf("task %s: %w", t.ID, ErrDanglingTask)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// save writes the whole board; callers hold the write lock
func (b *Board) save(ctx context.Context) error {
	if b.kv == nil {
		return nil
	}

	data, err := json.Marshal(boardState{Projects: b.projects, Tasks: b.tasks})
	if err != nil {
		return err
	}

	if err := b.kv.Put(ctx, storage.KeyBoard, data); err != nil {
		b.log.Error().
			Err(err).
			Msg("failed to save board")
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// AddProject creates a project with a fresh id
func (b *Board) AddProject(ctx context.Context, in ProjectInput) (Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Project{}, ErrEmptyName
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	color := in.Color
	if color == "" {
		color = Palette[len(b.projects)%len(Palette)]
	}

	now := b.now()
	project := Project{
		ID:          b.ids.New(),
		Name:        name,
		Description: in.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.projects = append(b.projects, project)

	b.log.Debug().
		Str("project_id", project.ID).
		Msg("project added")
	return project, b.save(ctx)
}

// UpdateProject merges patch into the project and refreshes UpdatedAt
func (b *Board) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.projectIndex(id)
	if i < 0 {
		return Project{}, fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
	}

	updated := b.projects[i]
	if err := updated.apply(patch); err != nil {
		return Project{}, err
	}
	updated.UpdatedAt = b.now()
	b.projects[i] = updated

	b.log.Debug().
		Str("project_id", id).
		Msg("project updated")
	return updated, b.save(ctx)
}

// DeleteProject removes the project and every task that belongs to it.
// It returns the number of tasks removed with it.
func (b *Board) DeleteProject(ctx context.Context, id string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.projectIndex(id)
	if i < 0 {
		return 0, fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
	}

	b.projects = append(b.projects[:i:i], b.projects[i+1:]...)

	kept := make([]Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if t.ProjectID != id {
			kept = append(kept, t)
		}
	}
	removed := len(b.tasks) - len(kept)
	b.tasks = kept

	b.log.Debug().
		Str("project_id", id).
		Int("tasks_removed", removed).
		Msg("project deleted")
	return removed, b.save(ctx)
}

// AddTask creates a task in an existing project
func (b *Board) AddTask(ctx context.Context, in TaskInput) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}

	status := in.Status
	if status == "" {
		status = StatusTodo
	}
	if !status.Valid() {
		return Task{}, fmt.Errorf("%q: %w", in.Status, ErrInvalidStatus)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.projectIndex(in.ProjectID) < 0 {
		return Task{}, fmt.Errorf("project %s: %w", in.ProjectID, ErrProjectNotFound)
	}

	now := b.now()
	task := Task{
		ID:          b.ids.New(),
		Title:       title,
		Description: in.Description,
		Status:      status,
		ProjectID:   in.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		due := *in.DueDate
		task.DueDate = &due
	}
	b.tasks = append(b.tasks, task)

	b.log.Debug().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Msg("task added")
	return cloneTask(task), b.save(ctx)
}

// UpdateTask merges patch into the task and refreshes UpdatedAt
func (b *Board) UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.taskIndex(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}

	updated := cloneTask(b.tasks[i])
	if patch.ProjectID != nil {
		if b.projectIndex(*patch.ProjectID) < 0 {
			return Task{}, fmt.Errorf("project %s: %w", *patch.ProjectID, ErrProjectNotFound)
		}
		updated.ProjectID = *patch.ProjectID
	}
	if err := updated.apply(patch); err != nil {
		return Task{}, err
	}
	updated.UpdatedAt = b.now()
	b.tasks[i] = updated

	b.log.Debug().
		Str("task_id", id).
		Str("status", string(updated.Status)).
		Msg("task updated")
	return cloneTask(updated), b.save(ctx)
}

// UpdateTaskStatus is UpdateTask with only the status set
func (b *Board) UpdateTaskStatus(ctx context.Context, id string, status Status) (Task, error) {
	return b.UpdateTask(ctx, id, TaskPatch{Status: &status})
}

// DeleteTask removes a single task
func (b *Board) DeleteTask(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.taskIndex(id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	b.tasks = append(b.tasks[:i:i], b.tasks[i+1:]...)

	b.log.Debug().
		Str("task_id", id).
		Msg("task deleted")
	return b.save(ctx)
}

// Project gets a project by id
func (b *Board) Project(id string) (Project, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.projectIndex(id)
	if i < 0 {
		return Project{}, fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
	}
	return b.projects[i], nil
}

// Projects returns all projects in creation order
func (b *Board) Projects() []Project {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return append([]Project(nil), b.projects...)
}

// FindProject resolves an id, a unique id prefix, or a case-insensitive name
func (b *Board) FindProject(ref string) (Project, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ref = strings.TrimSpace(ref)
	if i := b.projectIndex(ref); i >= 0 {
		return b.projects[i], nil
	}

	var matches []Project
	for _, p := range b.projects {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 && ref != "" {
		for _, p := range b.projects {
			if strings.HasPrefix(p.ID, ref) {
				matches = append(matches, p)
			}
		}
	}

	switch len(matches) {
	case 0:
		return Project{}, fmt.Errorf("project %s: %w", ref, ErrProjectNotFound)
	case 1:
		return matches[0], nil
	default:
		return Project{}, fmt.Errorf("project %s: %w", ref, ErrAmbiguousID)
	}
}

// Task gets a task by id
func (b *Board) Task(id string) (Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.taskIndex(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	return cloneTask(b.tasks[i]), nil
}

// FindTask resolves an id or a unique id prefix
func (b *Board) FindTask(ref string) (Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ref = strings.TrimSpace(ref)
	if i := b.taskIndex(ref); i >= 0 {
		return cloneTask(b.tasks[i]), nil
	}

	var matches []Task
	if ref != "" {
		for _, t := range b.tasks {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t)
			}
		}
	}

	switch len(matches) {
	case 0:
		return Task{}, fmt.Errorf("task %s: %w", ref, ErrTaskNotFound)
	case 1:
		return cloneTask(matches[0]), nil
	default:
		return Task{}, fmt.Errorf("task %s: %w", ref, ErrAmbiguousID)
	}
}

// Tasks returns all tasks in creation order
func (b *Board) Tasks() []Task {
	return b.filterTasks(func(Task) bool { return true })
}

// TasksByProject returns the tasks of one project
func (b *Board) TasksByProject(projectID string) []Task {
	return b.filterTasks(func(t Task) bool { return t.ProjectID == projectID })
}

// TasksByStatus returns the tasks in one status
func (b *Board) TasksByStatus(status Status) []Task {
	return b.filterTasks(func(t Task) bool { return t.Status == status })
}

// Now returns the board's notion of the current time
func (b *Board) Now() time.Time {
	return b.now()
}

func (b *Board) filterTasks(keep func(Task) bool) []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tasks := make([]Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if keep(t) {
			tasks = append(tasks, cloneTask(t))
		}
	}
	return tasks
}

func (b *Board) projectIndex(id string) int {
	for i, p := range b.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) taskIndex(id string) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
