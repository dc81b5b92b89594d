package models

import (
	"strings"
	"time"
)

// Project groups tasks under a name and a display color
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectInput holds the caller-supplied fields of a new project
type ProjectInput struct {
	Name        string
	Description string
	Color       string
}

// ProjectPatch is a partial update; nil fields are left untouched
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// Empty reports whether the patch changes nothing
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil
}

// Palette is cycled through when a project is created without a color
var Palette = []string{
	"hsl(217, 91%, 60%)",
	"hsl(262, 83%, 58%)",
	"hsl(142, 71%, 45%)",
	"hsl(25, 95%, 53%)",
	"hsl(346, 77%, 50%)",
	"hsl(189, 94%, 43%)",
}

func (p *Project) apply(patch ProjectPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrEmptyName
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	return nil
}
