package project

import (
	"context"
	"strings"
	"time"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// UpdateProjectInput is a partial update. Content and ColorConfig stay raw so
// per-key presence decides what is touched; Status empty means keep.
type UpdateProjectInput struct {
	OwnerID       domain.UserID
	ProjectID     string
	Title         string
	ConfirmRename bool
	Content       map[string]any
	ColorConfig   map[string]any
	Status        domain.ProjectStatus
}

type UpdateProjectResult struct {
	Project *domain.Project
}

// UpdateProject recomputes the full document from the stored record and the
// partial input, then replaces it. A title change is a rename: it must be
// confirmed explicitly and must not collide (case-insensitively) with another
// project of the owner. When the title is unchanged no uniqueness check runs.
//
// Rename detection compares trimmed titles exactly, while the collision check
// is case-insensitive; renaming "Alpha" to "ALPHA" therefore counts as a
// rename and demands confirmation even though the collision check (which
// excludes the project itself) then lets it through. Kept as observed
// behavior pending product clarification.
type UpdateProject struct {
	projects ports.ProjectStore
}

func NewUpdateProject(projects ports.ProjectStore) *UpdateProject {
	return &UpdateProject{projects: projects}
}

func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectResult, error) {
	if input.ProjectID == "" {
		return nil, domerrors.Validation("Project ID is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domerrors.Validation("Title is required")
	}
	existing, err := uc.projects.Find(ctx, input.OwnerID, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domerrors.ErrProjectNotFound
	}

	if strings.TrimSpace(existing.Title) != title {
		if !input.ConfirmRename {
			return nil, domerrors.ErrRenameConfirmationRequired
		}
		taken, err := uc.projects.TitleExists(ctx, input.OwnerID, title, existing.ProjectID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domerrors.ErrTitleExists
		}
	}

	status := existing.Status
	if input.Status != "" {
		if !domain.ValidStatus(input.Status) {
			return nil, domerrors.Validation("Invalid project status")
		}
		status = input.Status
	}

	next := &domain.Project{
		ProjectID:   existing.ProjectID,
		OwnerID:     existing.OwnerID,
		Title:       title,
		Status:      status,
		Content:     domain.MergeContent(existing.Content, domain.ContentPatchFromMap(input.Content)),
		ColorConfig: domain.MergeColors(existing.ColorConfig, domain.ColorPatchesFromMap(input.ColorConfig)),
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	if err := uc.projects.Replace(ctx, next); err != nil {
		return nil, err
	}
	return &UpdateProjectResult{Project: next}, nil
}
