package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/repository"
)

type viewStateService struct {
	viewStates repository.ViewStateRepo
}

func NewViewStateService(viewStates repository.ViewStateRepo) ViewStateService {
	return &viewStateService{viewStates: viewStates}
}

func (s *viewStateService) Get(ctx context.Context, projectID, userID string) (*domain.ViewState, error) {
	return s.viewStates.Get(ctx, projectID, userID)
}

func (s *viewStateService) ToggleCollapsed(ctx context.Context, projectID, userID, trackID string) (*domain.ViewState, error) {
	return s.mutate(ctx, projectID, userID, func(v *domain.ViewState) {
		v.ToggleCollapsed(trackID)
	})
}

func (s *viewStateService) Highlight(ctx context.Context, projectID, userID, trackID string, now time.Time) (*domain.ViewState, error) {
	return s.mutate(ctx, projectID, userID, func(v *domain.ViewState) {
		v.PruneHighlights(now)
		v.Highlight(trackID, now)
	})
}

func (s *viewStateService) SetZoom(ctx context.Context, projectID, userID string, zoom domain.ViewMode) (*domain.ViewState, error) {
	switch zoom {
	case domain.ViewDay, domain.ViewWeek, domain.ViewMonth:
	default:
		return nil, &ValidationError{Field: "zoom", Msg: fmt.Sprintf("unknown zoom level %q", zoom)}
	}
	return s.mutate(ctx, projectID, userID, func(v *domain.ViewState) {
		v.Zoom = zoom
	})
}

func (s *viewStateService) Reset(ctx context.Context, projectID, userID string) error {
	return s.viewStates.Clear(ctx, projectID, userID)
}

// mutate is read-modify-write: the repo hands back a default state when
// none is stored, so every mutation path is an upsert.
func (s *viewStateService) mutate(ctx context.Context, projectID, userID string, fn func(*domain.ViewState)) (*domain.ViewState, error) {
	v, err := s.viewStates.Get(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	fn(v)
	if err := s.viewStates.Put(ctx, projectID, userID, v); err != nil {
		return nil, err
	}
	return v, nil
}
