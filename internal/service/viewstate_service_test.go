package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/repository"
	"github.com/rfaulkner/tracklane/internal/testutil"
)

func setupViewStateService(t *testing.T) (ViewStateService, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := repository.NewSQLiteProjectRepo(database)
	proj := testutil.NewTestProject("ViewSvc")
	require.NoError(t, projRepo.Create(ctx, proj))

	return NewViewStateService(repository.NewSQLiteViewStateRepo(database)), proj.ID
}

func TestViewStateService_ToggleCollapsedPersists(t *testing.T) {
	svc, projID := setupViewStateService(t)
	ctx := context.Background()

	v, err := svc.ToggleCollapsed(ctx, projID, "alice", "track-1")
	require.NoError(t, err)
	assert.True(t, v.IsCollapsed("track-1"))

	stored, err := svc.Get(ctx, projID, "alice")
	require.NoError(t, err)
	assert.True(t, stored.IsCollapsed("track-1"))

	v, err = svc.ToggleCollapsed(ctx, projID, "alice", "track-1")
	require.NoError(t, err)
	assert.False(t, v.IsCollapsed("track-1"))
}

func TestViewStateService_SetZoom(t *testing.T) {
	svc, projID := setupViewStateService(t)
	ctx := context.Background()

	v, err := svc.SetZoom(ctx, projID, "alice", domain.ViewMonth)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewMonth, v.Zoom)

	stored, err := svc.Get(ctx, projID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewMonth, stored.Zoom)
}

func TestViewStateService_SetZoom_Invalid(t *testing.T) {
	svc, projID := setupViewStateService(t)

	_, err := svc.SetZoom(context.Background(), projID, "alice", domain.ViewMode("year"))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestViewStateService_HighlightIsTransient(t *testing.T) {
	svc, projID := setupViewStateService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	v, err := svc.Highlight(ctx, projID, "alice", "track-1", now)
	require.NoError(t, err)
	assert.True(t, v.IsHighlighted("track-1", now))
	assert.False(t, v.IsHighlighted("track-1", now.Add(domain.HighlightDuration+time.Second)))

	// Highlights never reach the store; a reload starts clean.
	stored, err := svc.Get(ctx, projID, "alice")
	require.NoError(t, err)
	assert.False(t, stored.IsHighlighted("track-1", now))
}

func TestViewStateService_Reset(t *testing.T) {
	svc, projID := setupViewStateService(t)
	ctx := context.Background()

	_, err := svc.ToggleCollapsed(ctx, projID, "alice", "track-1")
	require.NoError(t, err)
	_, err = svc.SetZoom(ctx, projID, "alice", domain.ViewDay)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, projID, "alice"))

	stored, err := svc.Get(ctx, projID, "alice")
	require.NoError(t, err)
	assert.False(t, stored.IsCollapsed("track-1"))
	assert.Equal(t, domain.ViewWeek, stored.Zoom, "reset restores the default zoom")
}
