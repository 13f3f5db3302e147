package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupItemRepo(t *testing.T) (*SQLiteItemRepo, *SQLiteTrackRepo, *SQLiteProjectRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewSQLiteItemRepo(db), NewSQLiteTrackRepo(db), NewSQLiteProjectRepo(db)
}

func TestItemRepo_CreateAndGetByID(t *testing.T) {
	repo, trackRepo, projRepo := setupItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Items")
	require.NoError(t, projRepo.Create(ctx, proj))
	track := testutil.NewTestTrack(proj.ID, "Garden")
	require.NoError(t, trackRepo.Create(ctx, track))

	start := testutil.Date(2025, 3, 10)
	end := testutil.Date(2025, 3, 14)
	item := testutil.NewTestItem(track.ID, "Plant tomatoes",
		testutil.WithItemType(domain.ItemEvent),
		testutil.WithItemStatus(domain.StatusInProgress),
		testutil.WithStartDate(start),
		testutil.WithEndDate(end),
		testutil.WithDescription("Both beds"),
	)
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, track.ID, got.TrackID)
	assert.Equal(t, domain.ItemEvent, got.Type)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, "Both beds", got.Description)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, start, *got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, end, *got.EndDate)
}

func TestItemRepo_GetByID_NotFound(t *testing.T) {
	repo, _, _ := setupItemRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemRepo_ListByTrack_DateOrderNilLast(t *testing.T) {
	repo, trackRepo, projRepo := setupItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Order")
	require.NoError(t, projRepo.Create(ctx, proj))
	track := testutil.NewTestTrack(proj.ID, "Kitchen")
	require.NoError(t, trackRepo.Create(ctx, track))

	unscheduled := testutil.NewTestItem(track.ID, "Someday")
	late := testutil.NewTestItem(track.ID, "Late",
		testutil.WithStartDate(testutil.Date(2025, 5, 1)))
	early := testutil.NewTestItem(track.ID, "Early",
		testutil.WithStartDate(testutil.Date(2025, 2, 1)))
	require.NoError(t, repo.Create(ctx, unscheduled))
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))

	items, err := repo.ListByTrack(ctx, track.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Early", items[0].Title)
	assert.Equal(t, "Late", items[1].Title)
	assert.Equal(t, "Someday", items[2].Title, "unscheduled items sort last")
}

func TestItemRepo_ListByProject_SkipsTrashedTracks(t *testing.T) {
	repo, trackRepo, projRepo := setupItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Snapshot")
	require.NoError(t, projRepo.Create(ctx, proj))

	live := testutil.NewTestTrack(proj.ID, "Live")
	trashed := testutil.NewTestTrack(proj.ID, "Trashed",
		testutil.TrashedAt(time.Now().UTC()))
	require.NoError(t, trackRepo.Create(ctx, live))
	require.NoError(t, trackRepo.Create(ctx, trashed))

	require.NoError(t, repo.Create(ctx, testutil.NewTestItem(live.ID, "Keep")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestItem(trashed.ID, "Drop")))

	items, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Keep", items[0].Title)
}

func TestItemRepo_Reassign(t *testing.T) {
	repo, trackRepo, projRepo := setupItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Move")
	require.NoError(t, projRepo.Create(ctx, proj))
	from := testutil.NewTestTrack(proj.ID, "From")
	to := testutil.NewTestTrack(proj.ID, "To")
	require.NoError(t, trackRepo.Create(ctx, from))
	require.NoError(t, trackRepo.Create(ctx, to))

	item := testutil.NewTestItem(from.ID, "Wanderer")
	require.NoError(t, repo.Create(ctx, item))

	require.NoError(t, repo.Reassign(ctx, item.ID, to.ID, time.Now().UTC()))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, to.ID, got.TrackID)
}

func TestItemRepo_Reassign_StaleItem(t *testing.T) {
	repo, trackRepo, projRepo := setupItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Stale")
	require.NoError(t, projRepo.Create(ctx, proj))
	track := testutil.NewTestTrack(proj.ID, "Target")
	require.NoError(t, trackRepo.Create(ctx, track))

	err := repo.Reassign(ctx, "deleted-elsewhere", track.ID, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemRepo_Update_StaleItem(t *testing.T) {
	repo, trackRepo, projRepo := setupItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Gone")
	require.NoError(t, projRepo.Create(ctx, proj))
	track := testutil.NewTestTrack(proj.ID, "Track")
	require.NoError(t, trackRepo.Create(ctx, track))

	item := testutil.NewTestItem(track.ID, "Ephemeral")
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.Delete(ctx, item.ID))

	item.Title = "Renamed after deletion"
	err := repo.Update(ctx, item)
	assert.ErrorIs(t, err, ErrNotFound, "updating a deleted item must not silently succeed")
}

func TestItemRepo_UpdateClearsEndDate(t *testing.T) {
	repo, trackRepo, projRepo := setupItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Clear")
	require.NoError(t, projRepo.Create(ctx, proj))
	track := testutil.NewTestTrack(proj.ID, "Track")
	require.NoError(t, trackRepo.Create(ctx, track))

	item := testutil.NewTestItem(track.ID, "Ranged",
		testutil.WithStartDate(testutil.Date(2025, 3, 10)),
		testutil.WithEndDate(testutil.Date(2025, 3, 14)))
	require.NoError(t, repo.Create(ctx, item))

	item.EndDate = nil
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndDate, "update must write SQL NULL for cleared dates")
}
