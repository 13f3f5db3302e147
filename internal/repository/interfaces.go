package repository

import (
	"context"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TrackRepo interface {
	Create(ctx context.Context, t *domain.Track) error
	GetByID(ctx context.Context, id string) (*domain.Track, error)
	// ListByProject returns all live (non-trashed) tracks for a project
	// ordered by order_index.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Track, error)
	ListRoots(ctx context.Context, projectID string) ([]*domain.Track, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Track, error)
	// ListTrashed returns soft-deleted tracks for a project.
	ListTrashed(ctx context.Context, projectID string) ([]*domain.Track, error)
	Update(ctx context.Context, t *domain.Track) error
	// DeleteExpired hard-deletes tracks trashed before the cutoff and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

type ItemRepo interface {
	Create(ctx context.Context, i *domain.RoadmapItem) error
	GetByID(ctx context.Context, id string) (*domain.RoadmapItem, error)
	ListByTrack(ctx context.Context, trackID string) ([]*domain.RoadmapItem, error)
	// ListByProject returns items for every live track of the project in
	// one snapshot, ordered by start date (unscheduled items last).
	ListByProject(ctx context.Context, projectID string) ([]*domain.RoadmapItem, error)
	Update(ctx context.Context, i *domain.RoadmapItem) error
	// Reassign moves an item to a different track.
	Reassign(ctx context.Context, itemID, trackID string, now time.Time) error
	Delete(ctx context.Context, id string) error
}

type MemberRepo interface {
	Upsert(ctx context.Context, m *domain.ProjectMember) error
	Get(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectMember, error)
	Delete(ctx context.Context, projectID, userID string) error
}

type ViewStateRepo interface {
	// Get returns the stored view state for a viewer and project, or a
	// fresh default state when none has been written yet.
	Get(ctx context.Context, projectID, userID string) (*domain.ViewState, error)
	Put(ctx context.Context, projectID, userID string, v *domain.ViewState) error
	Clear(ctx context.Context, projectID, userID string) error
}
