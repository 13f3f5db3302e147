package service

import (
	"context"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/projection"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project, ownerID string) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
	AddMember(ctx context.Context, projectID, userID string, role domain.MemberRole) error
	RemoveMember(ctx context.Context, projectID, userID string) error
	Members(ctx context.Context, projectID string) ([]*domain.ProjectMember, error)
}

type TrackService interface {
	Create(ctx context.Context, t *domain.Track) error
	GetByID(ctx context.Context, id string) (*domain.Track, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Track, error)
	ListTrashed(ctx context.Context, projectID string) ([]*domain.Track, error)
	Update(ctx context.Context, t *domain.Track) error
	// MoveToTrash soft-deletes a track; it stays recoverable for the
	// retention window.
	MoveToTrash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// PurgeExpired hard-deletes tracks whose trash retention has lapsed
	// and returns how many were removed.
	PurgeExpired(ctx context.Context) (int, error)
}

type ItemService interface {
	Create(ctx context.Context, i *domain.RoadmapItem) error
	GetByID(ctx context.Context, id string) (*domain.RoadmapItem, error)
	ListByTrack(ctx context.Context, trackID string) ([]*domain.RoadmapItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.RoadmapItem, error)
	Update(ctx context.Context, i *domain.RoadmapItem) error
	SetStatus(ctx context.Context, id string, status domain.ItemStatus) error
	// Reassign moves an item to a different live track.
	Reassign(ctx context.Context, itemID, trackID string) error
	Delete(ctx context.Context, id string) error
}

// RoadmapService produces the read-side projection the views render from.
type RoadmapService interface {
	// Load fetches one consistent snapshot of the project's tracks, items,
	// and the viewer's saved state, evaluates the viewer's permission, and
	// builds the projection. Concurrent Loads for the same project and
	// viewer share a single fetch.
	Load(ctx context.Context, projectID, userID string, opts ...projection.Option) (*projection.Projection, error)
}

// ViewStateService owns the per-viewer, per-project UI state. Every
// mutation persists and returns the updated state.
type ViewStateService interface {
	Get(ctx context.Context, projectID, userID string) (*domain.ViewState, error)
	ToggleCollapsed(ctx context.Context, projectID, userID, trackID string) (*domain.ViewState, error)
	Highlight(ctx context.Context, projectID, userID, trackID string, now time.Time) (*domain.ViewState, error)
	SetZoom(ctx context.Context, projectID, userID string, zoom domain.ViewMode) (*domain.ViewState, error)
	Reset(ctx context.Context, projectID, userID string) error
}
