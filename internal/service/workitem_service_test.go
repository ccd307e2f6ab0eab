package service

import (
	"context"
	"testing"

	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/ameliebergh/traject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorkItemService(t *testing.T) (WorkItemService, *domain.Scope, repository.WorkItemRepo, repository.DependencyRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	scopeRepo := repository.NewSQLiteScopeRepo(database)
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	svc := NewWorkItemService(itemRepo, depRepo, testutil.NewTestUoW(database))

	scope := testutil.NewTestScope("Items")
	require.NoError(t, scopeRepo.Create(context.Background(), scope))
	return svc, scope, itemRepo, depRepo
}

func TestWorkItemService_Rename(t *testing.T) {
	svc, scope, itemRepo, _ := setupWorkItemService(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem(scope.ID, "Old title")
	require.NoError(t, itemRepo.Create(ctx, w))
	require.NoError(t, svc.Rename(ctx, w.ID, "New title"))

	fetched, err := svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", fetched.Title)
}

func TestWorkItemService_SetEffort(t *testing.T) {
	svc, scope, itemRepo, _ := setupWorkItemService(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem(scope.ID, "Sized")
	require.NoError(t, itemRepo.Create(ctx, w))

	five := 5
	require.NoError(t, svc.SetEffort(ctx, w.ID, &five))

	fetched, err := svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Effort)
	assert.Equal(t, 5, *fetched.Effort)
}

func TestWorkItemService_SetStatusStampsDoneAt(t *testing.T) {
	svc, scope, itemRepo, _ := setupWorkItemService(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem(scope.ID, "Finishing")
	require.NoError(t, itemRepo.Create(ctx, w))

	require.NoError(t, svc.SetStatus(ctx, w.ID, domain.StatusDone, testutil.FixtureNow))

	fetched, err := svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, fetched.Status)
	require.NotNil(t, fetched.DoneAt)
	assert.Equal(t, testutil.FixtureNow, *fetched.DoneAt)
}

func TestWorkItemService_SetStatusBackClearsDoneAt(t *testing.T) {
	svc, scope, itemRepo, _ := setupWorkItemService(t)
	ctx := context.Background()

	w := testutil.NewTestWorkItem(scope.ID, "Reopened", testutil.WithDoneAt(testutil.FixtureNow))
	require.NoError(t, itemRepo.Create(ctx, w))

	require.NoError(t, svc.SetStatus(ctx, w.ID, domain.StatusActive, testutil.FixtureNow.AddDate(0, 0, 1)))

	fetched, err := svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, fetched.Status)
	assert.Nil(t, fetched.DoneAt)
}

func TestWorkItemService_SetStatusRecomputesOutgoingEdges(t *testing.T) {
	svc, scope, itemRepo, depRepo := setupWorkItemService(t)
	ctx := context.Background()

	source := testutil.NewTestWorkItem(scope.ID, "Predecessor")
	target := testutil.NewTestWorkItem(scope.ID, "Successor")
	require.NoError(t, itemRepo.Create(ctx, source))
	require.NoError(t, itemRepo.Create(ctx, target))

	dep := testutil.NewTestDependency(source.ID, target.ID, source.Status)
	require.NoError(t, depRepo.Create(ctx, dep))
	require.Equal(t, domain.DependencyToDo, dep.State)

	require.NoError(t, svc.SetStatus(ctx, source.ID, domain.StatusDone, testutil.FixtureNow))

	e, err := depRepo.GetByPair(ctx, source.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DependencyDone, e.State)
	assert.Equal(t, domain.HealthHealthy, e.Health, "completed predecessor is always healthy")
}

func TestWorkItemService_SetStatusLeavesIncomingEdgesAlone(t *testing.T) {
	svc, scope, itemRepo, depRepo := setupWorkItemService(t)
	ctx := context.Background()

	source := testutil.NewTestWorkItem(scope.ID, "Predecessor")
	target := testutil.NewTestWorkItem(scope.ID, "Successor")
	require.NoError(t, itemRepo.Create(ctx, source))
	require.NoError(t, itemRepo.Create(ctx, target))
	dep := testutil.NewTestDependency(source.ID, target.ID, source.Status)
	require.NoError(t, depRepo.Create(ctx, dep))

	// The successor finishing says nothing about the predecessor's state.
	require.NoError(t, svc.SetStatus(ctx, target.ID, domain.StatusDone, testutil.FixtureNow))

	e, err := depRepo.GetByPair(ctx, source.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DependencyToDo, e.State)
}
