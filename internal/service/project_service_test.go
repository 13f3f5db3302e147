package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/repository"
	"github.com/rfaulkner/tracklane/internal/testutil"
)

func setupProjectService(t *testing.T) (ProjectService, repository.MemberRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	memberRepo := repository.NewSQLiteMemberRepo(database)
	svc := NewProjectService(repository.NewSQLiteProjectRepo(database), memberRepo, testutil.NewTestUoW(database))
	return svc, memberRepo
}

func TestProjectService_CreateAssignsOwner(t *testing.T) {
	svc, members := setupProjectService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Household")
	proj.ID = ""
	require.NoError(t, svc.Create(ctx, proj, "alice"))

	assert.NotEmpty(t, proj.ID)
	assert.Equal(t, domain.ProjectActive, proj.Status)

	m, err := members.Get(ctx, proj.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, m.Role)
}

func TestProjectService_Create_BadShortID(t *testing.T) {
	svc, _ := setupProjectService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Bad", testutil.WithShortID("nope"))
	err := svc.Create(ctx, proj, "alice")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestProjectService_Create_NoOwner(t *testing.T) {
	svc, _ := setupProjectService(t)

	err := svc.Create(context.Background(), testutil.NewTestProject("Orphan"), "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestProjectService_DeleteRequiresArchive(t *testing.T) {
	svc, _ := setupProjectService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Sticky")
	require.NoError(t, svc.Create(ctx, proj, "alice"))

	err := svc.Delete(ctx, proj.ID, false)
	require.Error(t, err)

	require.NoError(t, svc.Archive(ctx, proj.ID))
	require.NoError(t, svc.Delete(ctx, proj.ID, false))

	_, err = svc.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_Members(t *testing.T) {
	svc, _ := setupProjectService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shared")
	require.NoError(t, svc.Create(ctx, proj, "alice"))

	require.NoError(t, svc.AddMember(ctx, proj.ID, "bob", domain.RoleEditor))

	list, err := svc.Members(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.RemoveMember(ctx, proj.ID, "bob"))
	list, err = svc.Members(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProjectService_AddMember_BadRole(t *testing.T) {
	svc, _ := setupProjectService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roles")
	require.NoError(t, svc.Create(ctx, proj, "alice"))

	err := svc.AddMember(ctx, proj.ID, "bob", domain.MemberRole("janitor"))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
