package models

import (
	"errors"
)

// Validation errors
var (
	// ErrEmptyName is returned when a project would end up without a name
	ErrEmptyName = errors.New("project name is required")

	// ErrEmptyTitle is returned when a task would end up without a title
	ErrEmptyTitle = errors.New("task title is required")

	// ErrInvalidStatus is returned for any status outside todo, in_progress and done
	ErrInvalidStatus = errors.New("invalid task status")
)

// Lookup errors
var (
	// ErrProjectNotFound is returned when a project id does not resolve.
	// Adding or moving a task to an unknown project wraps it as well.
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound is returned when a task id does not resolve
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousID is returned when an id prefix matches more than one entity
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// Persistence errors
var (
	// ErrDanglingTask is returned when a stored board holds a task whose project is gone
	ErrDanglingTask = errors.New("task references a missing project")

	// ErrDuplicateID is returned when a stored board repeats a project or task id
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNoUser is returned when no user profile has been saved
	ErrNoUser = errors.New("no user profile saved")
)
