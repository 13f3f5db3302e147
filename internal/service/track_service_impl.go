package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/repository"
)

type trackService struct {
	tracks    repository.TrackRepo
	uow       db.UnitOfWork
	retention time.Duration
}

func NewTrackService(tracks repository.TrackRepo, uow db.UnitOfWork, retention time.Duration) TrackService {
	if retention <= 0 {
		retention = domain.TrashRetention
	}
	return &trackService{tracks: tracks, uow: uow, retention: retention}
}

func (s *trackService) Create(ctx context.Context, t *domain.Track) error {
	if t.Category == "" {
		t.Category = domain.CategoryMain
	}
	if t.Visibility == "" {
		t.Visibility = domain.VisibilityVisible
	}
	if err := t.Validate(); err != nil {
		return validationErr(err)
	}
	if t.ParentID != nil {
		parent, err := s.tracks.GetByID(ctx, *t.ParentID)
		if err != nil {
			return err
		}
		if parent.ProjectID != t.ProjectID {
			return &ValidationError{Field: "parent", Msg: "parent track belongs to a different project"}
		}
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tracks.Create(ctx, t)
}

func (s *trackService) GetByID(ctx context.Context, id string) (*domain.Track, error) {
	return s.tracks.GetByID(ctx, id)
}

func (s *trackService) ListByProject(ctx context.Context, projectID string) ([]*domain.Track, error) {
	return s.tracks.ListByProject(ctx, projectID)
}

func (s *trackService) ListTrashed(ctx context.Context, projectID string) ([]*domain.Track, error) {
	return s.tracks.ListTrashed(ctx, projectID)
}

func (s *trackService) Update(ctx context.Context, t *domain.Track) error {
	if err := t.Validate(); err != nil {
		return validationErr(err)
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tracks.Update(ctx, t)
}

// MoveToTrash soft-deletes the track and all of its subtracks in one
// transaction, so a restored parent never comes back with live children
// missing.
func (s *trackService) MoveToTrash(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTracks := repository.NewSQLiteTrackRepo(tx)
		t, err := txTracks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		children, err := txTracks.ListChildren(ctx, t.ID)
		if err != nil {
			return err
		}
		for _, child := range append(children, t) {
			child.MoveToTrash(now)
			child.UpdatedAt = now
			if err := txTracks.Update(ctx, child); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *trackService) Restore(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTracks := repository.NewSQLiteTrackRepo(tx)
		t, err := txTracks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := t.Restore(now); err != nil {
			return validationErr(err)
		}
		t.UpdatedAt = now
		return txTracks.Update(ctx, t)
	})
}

func (s *trackService) PurgeExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.retention)
	return s.tracks.DeleteExpired(ctx, cutoff)
}
