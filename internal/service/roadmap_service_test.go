package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/projection"
	"github.com/rfaulkner/tracklane/internal/repository"
	"github.com/rfaulkner/tracklane/internal/testutil"
)

type roadmapEnv struct {
	svc      RoadmapService
	projects repository.ProjectRepo
	tracks   repository.TrackRepo
	items    repository.ItemRepo
	members  repository.MemberRepo
	views    repository.ViewStateRepo
}

func setupRoadmapService(t *testing.T) roadmapEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := roadmapEnv{
		projects: repository.NewSQLiteProjectRepo(database),
		tracks:   repository.NewSQLiteTrackRepo(database),
		items:    repository.NewSQLiteItemRepo(database),
		members:  repository.NewSQLiteMemberRepo(database),
		views:    repository.NewSQLiteViewStateRepo(database),
	}
	env.svc = NewRoadmapService(env.tracks, env.items, env.members, env.views)
	return env
}

func (e roadmapEnv) seedProject(t *testing.T, name, ownerID string) *domain.Project {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject(name)
	require.NoError(t, e.projects.Create(ctx, proj))
	require.NoError(t, e.members.Upsert(ctx, testutil.NewTestMember(proj.ID, ownerID, domain.RoleOwner)))
	return proj
}

func TestRoadmapService_Load(t *testing.T) {
	env := setupRoadmapService(t)
	ctx := context.Background()

	proj := env.seedProject(t, "Roadmap", "alice")
	track := testutil.NewTestTrack(proj.ID, "Engineering")
	require.NoError(t, env.tracks.Create(ctx, track))
	require.NoError(t, env.items.Create(ctx, testutil.NewTestItem(track.ID, "api")))

	p, err := env.svc.Load(ctx, proj.ID, "alice")
	require.NoError(t, err)

	require.Len(t, p.Tracks, 1)
	assert.Equal(t, "Engineering", p.Tracks[0].Track.Name)
	assert.Equal(t, 1, p.Tracks[0].ItemCount)
	assert.True(t, p.Tracks[0].CanEdit, "owners can edit")
}

func TestRoadmapService_Load_ViewerCannotEdit(t *testing.T) {
	env := setupRoadmapService(t)
	ctx := context.Background()

	proj := env.seedProject(t, "Roadmap2", "alice")
	require.NoError(t, env.members.Upsert(ctx, testutil.NewTestMember(proj.ID, "bob", domain.RoleViewer)))
	require.NoError(t, env.tracks.Create(ctx, testutil.NewTestTrack(proj.ID, "Eng")))

	p, err := env.svc.Load(ctx, proj.ID, "bob")
	require.NoError(t, err)
	require.Len(t, p.Tracks, 1)
	assert.False(t, p.Tracks[0].CanEdit)
}

func TestRoadmapService_Load_NonMemberDenied(t *testing.T) {
	env := setupRoadmapService(t)
	ctx := context.Background()

	proj := env.seedProject(t, "Roadmap3", "alice")

	_, err := env.svc.Load(ctx, proj.ID, "mallory")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRoadmapService_Load_EmptyProjectIsEmptyProjection(t *testing.T) {
	env := setupRoadmapService(t)
	ctx := context.Background()

	proj := env.seedProject(t, "Roadmap4", "alice")

	p, err := env.svc.Load(ctx, proj.ID, "alice")
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestRoadmapService_Load_MergesStoredViewState(t *testing.T) {
	env := setupRoadmapService(t)
	ctx := context.Background()

	proj := env.seedProject(t, "Roadmap5", "alice")
	track := testutil.NewTestTrack(proj.ID, "Eng")
	require.NoError(t, env.tracks.Create(ctx, track))

	view := domain.NewViewState()
	view.ToggleCollapsed(track.ID)
	require.NoError(t, env.views.Put(ctx, proj.ID, "alice", view))

	p, err := env.svc.Load(ctx, proj.ID, "alice")
	require.NoError(t, err)
	require.Len(t, p.Tracks, 1)
	assert.True(t, p.Tracks[0].Collapsed)
}

func TestRoadmapService_Load_VisibleOnlyOption(t *testing.T) {
	env := setupRoadmapService(t)
	ctx := context.Background()

	proj := env.seedProject(t, "Roadmap6", "alice")
	require.NoError(t, env.tracks.Create(ctx, testutil.NewTestTrack(proj.ID, "Shown")))
	require.NoError(t, env.tracks.Create(ctx, testutil.NewTestTrack(proj.ID, "Hidden",
		testutil.WithVisibility(domain.VisibilityHidden))))

	full, err := env.svc.Load(ctx, proj.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, full.Tracks, 2)

	visible, err := env.svc.Load(ctx, proj.ID, "alice", projection.VisibleOnly())
	require.NoError(t, err)
	require.Len(t, visible.Tracks, 1)
	assert.Equal(t, "Shown", visible.Tracks[0].Track.Name)
}

func TestRoadmapService_Load_ConcurrentLoadsAgree(t *testing.T) {
	env := setupRoadmapService(t)
	ctx := context.Background()

	proj := env.seedProject(t, "Roadmap7", "alice")
	track := testutil.NewTestTrack(proj.ID, "Eng")
	require.NoError(t, env.tracks.Create(ctx, track))

	const loaders = 8
	results := make([]*projection.Projection, loaders)
	errs := make([]error, loaders)

	var wg sync.WaitGroup
	for i := 0; i < loaders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.svc.Load(ctx, proj.ID, "alice")
		}(i)
	}
	wg.Wait()

	for i := 0; i < loaders; i++ {
		require.NoError(t, errs[i])
		require.Len(t, results[i].Tracks, 1)
		assert.Equal(t, track.ID, results[i].Tracks[0].Track.ID)
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func TestRoadmapService_Load_ReportsUseCaseEvent(t *testing.T) {
	database := testutil.NewTestDB(t)
	env := roadmapEnv{
		projects: repository.NewSQLiteProjectRepo(database),
		tracks:   repository.NewSQLiteTrackRepo(database),
		items:    repository.NewSQLiteItemRepo(database),
		members:  repository.NewSQLiteMemberRepo(database),
		views:    repository.NewSQLiteViewStateRepo(database),
	}
	obs := &recordingObserver{}
	env.svc = NewRoadmapService(env.tracks, env.items, env.members, env.views, obs)
	ctx := context.Background()

	proj := env.seedProject(t, "Observed", "alice")
	root := testutil.NewTestTrack(proj.ID, "Eng")
	require.NoError(t, env.tracks.Create(ctx, root))
	sub := testutil.NewTestTrack(proj.ID, "API", testutil.WithParentTrack(root.ID))
	require.NoError(t, env.tracks.Create(ctx, sub))
	require.NoError(t, env.items.Create(ctx, testutil.NewTestItem(root.ID, "design")))
	require.NoError(t, env.items.Create(ctx, testutil.NewTestItem(sub.ID, "endpoints")))

	_, err := env.svc.Load(ctx, proj.ID, "alice")
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	e := obs.events[0]
	assert.Equal(t, "load-roadmap", e.Name)
	assert.Equal(t, proj.ID, e.ProjectID)
	assert.Equal(t, "alice", e.UserID)
	assert.True(t, e.Success)
	assert.Equal(t, 2, e.TrackCount)
	assert.Equal(t, 2, e.ItemCount)
	assert.Positive(t, e.Duration)

	_, err = env.svc.Load(ctx, proj.ID, "mallory")
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	denied := obs.events[1]
	assert.False(t, denied.Success)
	assert.ErrorIs(t, denied.Err, ErrPermissionDenied)
	assert.Zero(t, denied.TrackCount, "failed loads report no projection counts")
}

func TestRoadmapService_Load_CancelledContext(t *testing.T) {
	env := setupRoadmapService(t)

	proj := env.seedProject(t, "Roadmap8", "alice")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.svc.Load(ctx, proj.ID, "alice")
	assert.Error(t, err)
}
