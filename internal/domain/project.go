package domain

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusPublished ProjectStatus = "published"
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
	StatusCancelled ProjectStatus = "cancelled"
)

// ValidStatus reports whether s is a known project status.
func ValidStatus(s ProjectStatus) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Project is one Theory-of-Change document, keyed by (OwnerID, ProjectID).
// ProjectID is a per-owner monotonically assigned numeric string; titles are
// unique per owner case-insensitively.
type Project struct {
	ProjectID   string
	OwnerID     UserID
	Title       string
	Status      ProjectStatus
	Content     Content
	ColorConfig ColorConfig
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
