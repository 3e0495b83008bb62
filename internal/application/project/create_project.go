package project

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// CreateProjectInput carries raw payload objects for content and colorConfig
// so key presence survives decoding.
type CreateProjectInput struct {
	OwnerID     domain.UserID
	Title       string
	Content     map[string]any
	ColorConfig map[string]any
}

type CreateProjectResult struct {
	Project *domain.Project
}

// CreateProject assigns the owner's next sequential project id, enforces
// case-insensitive title uniqueness, and fills content and color defaults.
type CreateProject struct {
	projects ports.ProjectStore
}

func NewCreateProject(projects ports.ProjectStore) *CreateProject {
	return &CreateProject{projects: projects}
}

func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domerrors.Validation("Title is required")
	}
	if input.ColorConfig != nil {
		if err := domain.ValidateColorConfig(input.ColorConfig); err != nil {
			return nil, domerrors.Validation(err.Error())
		}
	}
	existing, err := uc.projects.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	maxID := 0
	for _, p := range existing {
		if strings.EqualFold(strings.TrimSpace(p.Title), title) {
			return nil, domerrors.ErrTitleExists
		}
		if n, err := strconv.Atoi(p.ProjectID); err == nil && n > maxID {
			maxID = n
		}
	}

	content := domain.MergeContent(domain.NewContent(), domain.ContentPatchFromMap(input.Content))
	colors := domain.NewColorConfig()
	if input.ColorConfig != nil {
		colors = domain.ColorConfigFromMap(input.ColorConfig)
	}

	now := time.Now()
	p := &domain.Project{
		ProjectID:   strconv.Itoa(maxID + 1),
		OwnerID:     input.OwnerID,
		Title:       title,
		Status:      domain.StatusDraft,
		Content:     content,
		ColorConfig: colors,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projects.Insert(ctx, p); err != nil {
		return nil, err
	}
	return &CreateProjectResult{Project: p}, nil
}
