package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/projection"
	"github.com/rfaulkner/tracklane/internal/repository"
)

type roadmapService struct {
	tracks     repository.TrackRepo
	items      repository.ItemRepo
	members    repository.MemberRepo
	viewStates repository.ViewStateRepo

	observer UseCaseObserver

	mu       sync.Mutex
	inflight map[string]*loadCall
}

// loadCall is one shared fetch; later callers wait on done and reuse the
// snapshot.
type loadCall struct {
	done     chan struct{}
	snapshot *snapshot
	err      error
}

type snapshot struct {
	perm   domain.Permission
	tracks []*domain.Track
	items  []*domain.RoadmapItem
	view   *domain.ViewState
}

func NewRoadmapService(tracks repository.TrackRepo, items repository.ItemRepo, members repository.MemberRepo, viewStates repository.ViewStateRepo, observers ...UseCaseObserver) RoadmapService {
	return &roadmapService{
		tracks:     tracks,
		items:      items,
		members:    members,
		viewStates: viewStates,
		observer:   useCaseObserverOrNoop(observers),
		inflight:   make(map[string]*loadCall),
	}
}

// Load builds the projection from one consistent snapshot. A fetch
// failure surfaces as an error, never as an empty projection. Concurrent
// loads for the same project and viewer coalesce onto a single fetch; the
// projection itself is still built per call, since each caller may pass
// different options.
func (s *roadmapService) Load(ctx context.Context, projectID, userID string, opts ...projection.Option) (p *projection.Projection, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		event := UseCaseEvent{
			Name:      "load-roadmap",
			ProjectID: projectID,
			UserID:    userID,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		}
		if p != nil {
			event.TrackCount = len(p.Flatten())
			for _, root := range p.Tracks {
				event.ItemCount += root.TotalItemCount
			}
		}
		s.observer.ObserveUseCase(ctx, event)
	}()

	snap, err := s.fetch(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return projection.Build(projection.Input{
		ProjectID: projectID,
		Tracks:    snap.tracks,
		Items:     snap.items,
		View:      snap.view,
		CanEdit:   snap.perm.CanEdit,
		Now:       time.Now().UTC(),
	}, opts...), nil
}

func (s *roadmapService) fetch(ctx context.Context, projectID, userID string) (*snapshot, error) {
	key := projectID + "\x00" + userID

	s.mu.Lock()
	if call, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.snapshot, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &loadCall{done: make(chan struct{})}
	s.inflight[key] = call
	s.mu.Unlock()

	call.snapshot, call.err = s.fetchSnapshot(ctx, projectID, userID)
	close(call.done)

	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()

	return call.snapshot, call.err
}

func (s *roadmapService) fetchSnapshot(ctx context.Context, projectID, userID string) (*snapshot, error) {
	member, err := s.members.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s on project %s: %w", userID, projectID, ErrPermissionDenied)
		}
		return nil, err
	}
	perm := domain.PermissionForRole(member.Role)
	if !perm.CanView {
		return nil, fmt.Errorf("user %s on project %s: %w", userID, projectID, ErrPermissionDenied)
	}

	tracks, err := s.tracks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading tracks: %w", err)
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	view, err := s.viewStates.Get(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading view state: %w", err)
	}
	return &snapshot{perm: perm, tracks: tracks, items: items, view: view}, nil
}
