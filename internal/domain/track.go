package domain

import (
	"fmt"
	"time"
)

// TrashRetention is how long a soft-deleted track stays recoverable
// before it becomes eligible for permanent removal.
const TrashRetention = 7 * 24 * time.Hour

// Track is a named grouping node in the roadmap tree. A nil ParentID marks
// a root track; children hang one level below it. Depth beyond two levels
// is tolerated by the tree builder but the views assume track -> subtrack.
type Track struct {
	ID         string
	ProjectID  string
	ParentID   *string
	Name       string
	Color      *string
	OrderIndex int
	Category   TrackCategory

	// Shared-instance flags: whether the track participates in the roadmap
	// projection at all, and how it presents when it does.
	IncludeInRoadmap bool
	Visibility       TrackVisibility

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks invariants that must hold before a track is persisted.
func (t *Track) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("track name is required")
	}
	if t.ProjectID == "" {
		return fmt.Errorf("track must belong to a project")
	}
	switch t.Category {
	case CategoryMain, CategorySideProject:
	default:
		return fmt.Errorf("unknown track category %q", t.Category)
	}
	switch t.Visibility {
	case VisibilityVisible, VisibilityCollapsed, VisibilityHidden:
	default:
		return fmt.Errorf("unknown track visibility %q", t.Visibility)
	}
	return nil
}

// IsTrashed reports whether the track is in the recoverable trash state.
func (t *Track) IsTrashed() bool {
	return t.DeletedAt != nil
}

// MoveToTrash marks the track soft-deleted at the given instant.
// Trashing an already-trashed track keeps the original deletion time.
func (t *Track) MoveToTrash(now time.Time) {
	if t.DeletedAt != nil {
		return
	}
	t.DeletedAt = &now
	t.UpdatedAt = now
}

// Restore clears the soft-delete marker.
func (t *Track) Restore(now time.Time) error {
	if t.DeletedAt == nil {
		return fmt.Errorf("track %q is not in trash", t.Name)
	}
	t.DeletedAt = nil
	t.UpdatedAt = now
	return nil
}

// TrashExpired reports whether the track has been in trash longer than
// the retention window and may be permanently removed.
func (t *Track) TrashExpired(now time.Time, retention time.Duration) bool {
	return t.DeletedAt != nil && now.Sub(*t.DeletedAt) > retention
}

// IsRoot reports whether the track sits at the top of the tree.
func (t *Track) IsRoot() bool {
	return t.ParentID == nil
}
