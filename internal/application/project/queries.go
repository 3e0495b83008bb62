package project

import (
	"context"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// GetProject fetches a single project by (owner, id).
type GetProject struct {
	projects ports.ProjectStore
}

func NewGetProject(projects ports.ProjectStore) *GetProject {
	return &GetProject{projects: projects}
}

func (uc *GetProject) Execute(ctx context.Context, ownerID domain.UserID, projectID string) (*domain.Project, error) {
	p, err := uc.projects.Find(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	return p, nil
}

// ListProjects returns the owner's projects, newest first.
type ListProjects struct {
	projects ports.ProjectStore
}

func NewListProjects(projects ports.ProjectStore) *ListProjects {
	return &ListProjects{projects: projects}
}

func (uc *ListProjects) Execute(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error) {
	return uc.projects.ListByOwner(ctx, ownerID)
}

// DeleteProject removes a project record outright; there is no soft delete.
type DeleteProject struct {
	projects ports.ProjectStore
}

func NewDeleteProject(projects ports.ProjectStore) *DeleteProject {
	return &DeleteProject{projects: projects}
}

func (uc *DeleteProject) Execute(ctx context.Context, ownerID domain.UserID, projectID string) error {
	deleted, err := uc.projects.Delete(ctx, ownerID, projectID)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrProjectNotFound
	}
	return nil
}
