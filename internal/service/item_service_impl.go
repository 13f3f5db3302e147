package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/repository"
)

type itemService struct {
	items  repository.ItemRepo
	tracks repository.TrackRepo
	uow    db.UnitOfWork
}

func NewItemService(items repository.ItemRepo, tracks repository.TrackRepo, uow db.UnitOfWork) ItemService {
	return &itemService{items: items, tracks: tracks, uow: uow}
}

func (s *itemService) Create(ctx context.Context, i *domain.RoadmapItem) error {
	if i.Status == "" {
		i.Status = domain.StatusNotStarted
	}
	if i.Type == "" {
		i.Type = domain.ItemTask
	}
	if err := i.Validate(); err != nil {
		return validationErr(err)
	}
	track, err := s.tracks.GetByID(ctx, i.TrackID)
	if err != nil {
		return err
	}
	if track.IsTrashed() {
		return &ValidationError{Field: "track", Msg: "cannot add items to a trashed track"}
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now
	return s.items.Create(ctx, i)
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.RoadmapItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) ListByTrack(ctx context.Context, trackID string) ([]*domain.RoadmapItem, error) {
	return s.items.ListByTrack(ctx, trackID)
}

func (s *itemService) ListByProject(ctx context.Context, projectID string) ([]*domain.RoadmapItem, error) {
	return s.items.ListByProject(ctx, projectID)
}

func (s *itemService) Update(ctx context.Context, i *domain.RoadmapItem) error {
	if err := i.Validate(); err != nil {
		return validationErr(err)
	}
	i.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, i)
}

func (s *itemService) SetStatus(ctx context.Context, id string, status domain.ItemStatus) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		item, err := txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := item.SetStatus(status, time.Now().UTC()); err != nil {
			return validationErr(err)
		}
		return txItems.Update(ctx, item)
	})
}

// Reassign moves an item onto another track after checking the target is
// live and in the same project as the current one.
func (s *itemService) Reassign(ctx context.Context, itemID, trackID string) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		txTracks := repository.NewSQLiteTrackRepo(tx)

		item, err := txItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		from, err := txTracks.GetByID(ctx, item.TrackID)
		if err != nil {
			return err
		}
		to, err := txTracks.GetByID(ctx, trackID)
		if err != nil {
			return err
		}
		if to.IsTrashed() {
			return &ValidationError{Field: "track", Msg: "cannot move items onto a trashed track"}
		}
		if to.ProjectID != from.ProjectID {
			return &ValidationError{Field: "track", Msg: "cannot move items across projects"}
		}
		return txItems.Reassign(ctx, itemID, trackID, now)
	})
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
