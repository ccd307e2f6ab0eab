package service

import (
	"context"
	"testing"
	"time"

	"github.com/ameliebergh/traject/internal/app"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/ameliebergh/traject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRollupService(t *testing.T) (RollupService, *domain.Scope, repository.WorkItemRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	scopeRepo := repository.NewSQLiteScopeRepo(database)
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	svc := NewRollupService(scopeRepo, itemRepo)

	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	scope := testutil.NewTestScope("Rollup", testutil.WithScopeCreatedAt(day1))
	require.NoError(t, scopeRepo.Create(context.Background(), scope))
	return svc, scope, itemRepo
}

func TestRollupService_DailySeries(t *testing.T) {
	svc, scope, itemRepo := setupRollupService(t)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
	}
	for i := 1; i <= 3; i++ {
		w := testutil.NewTestWorkItem(scope.ID, "Leaf",
			testutil.WithCreatedAt(day(i)),
			testutil.WithDoneAt(day(10)))
		require.NoError(t, itemRepo.Create(ctx, w))
	}

	req := app.NewRollupRequest(scope.ID)
	start := day(1)
	end := day(10)
	req.Start = &start
	req.End = &end

	resp, err := svc.Daily(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Series, 10)
	assert.Equal(t, 3, resp.LeafCount)

	first := resp.Series[0]
	assert.Equal(t, 1, first.TotalCount)
	assert.Equal(t, 0, first.CompletedCount)

	third := resp.Series[2]
	assert.Equal(t, 3, third.TotalCount)

	last := resp.Series[9]
	assert.Equal(t, 3, last.CompletedCount)
	assert.Equal(t, 1.0, last.PercentComplete)
	require.NotNil(t, resp.Latest)
	assert.Equal(t, last, *resp.Latest)
}

func TestRollupService_OnlyLeavesCount(t *testing.T) {
	svc, scope, itemRepo := setupRollupService(t)
	ctx := context.Background()

	parent := testutil.NewTestWorkItem(scope.ID, "Parent")
	require.NoError(t, itemRepo.Create(ctx, parent))
	child := testutil.NewTestWorkItem(scope.ID, "Child", testutil.WithParent(parent.ID))
	require.NoError(t, itemRepo.Create(ctx, child))

	resp, err := svc.Daily(ctx, app.NewRollupRequest(scope.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.LeafCount, "parents aggregate, only leaves contribute")
}

func TestRollupService_RootRestriction(t *testing.T) {
	svc, scope, itemRepo := setupRollupService(t)
	ctx := context.Background()

	branchA := testutil.NewTestWorkItem(scope.ID, "Branch A")
	branchB := testutil.NewTestWorkItem(scope.ID, "Branch B")
	require.NoError(t, itemRepo.Create(ctx, branchA))
	require.NoError(t, itemRepo.Create(ctx, branchB))
	for i := 0; i < 2; i++ {
		require.NoError(t, itemRepo.Create(ctx,
			testutil.NewTestWorkItem(scope.ID, "Under A", testutil.WithParent(branchA.ID))))
	}
	require.NoError(t, itemRepo.Create(ctx,
		testutil.NewTestWorkItem(scope.ID, "Under B", testutil.WithParent(branchB.ID))))

	req := app.NewRollupRequest(scope.ID)
	req.RootID = &branchA.ID

	resp, err := svc.Daily(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.LeafCount)
}

func TestRollupService_UnknownRoot(t *testing.T) {
	svc, scope, _ := setupRollupService(t)

	req := app.NewRollupRequest(scope.ID)
	ghost := "ghost"
	req.RootID = &ghost

	_, err := svc.Daily(context.Background(), req)
	var rerr *app.RollupError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, app.RollupErrUnknownRoot, rerr.Code)
}

func TestRollupService_UnknownScope(t *testing.T) {
	svc, _, _ := setupRollupService(t)

	_, err := svc.Daily(context.Background(), app.NewRollupRequest("nope"))
	var rerr *app.RollupError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, app.RollupErrInvalidScope, rerr.Code)
}

func TestRollupService_InvalidWindow(t *testing.T) {
	svc, scope, _ := setupRollupService(t)

	req := app.NewRollupRequest(scope.ID)
	start := testutil.FixtureNow
	end := testutil.FixtureNow.AddDate(0, 0, -1)
	req.Start = &start
	req.End = &end

	_, err := svc.Daily(context.Background(), req)
	var rerr *app.RollupError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, app.RollupErrInvalidWindow, rerr.Code)
}

func TestRollupService_EmptyScope(t *testing.T) {
	svc, scope, _ := setupRollupService(t)

	resp, err := svc.Daily(context.Background(), app.NewRollupRequest(scope.ID))
	require.NoError(t, err)
	assert.Empty(t, resp.Series)
	assert.Nil(t, resp.Latest)
	assert.NotEmpty(t, resp.Warnings)
}

func TestRollupService_UnpinnedStartUsesScopeCreation(t *testing.T) {
	svc, scope, itemRepo := setupRollupService(t)
	ctx := context.Background()

	// Scope created 2025-03-01; only leaf created later.
	created := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	w := testutil.NewTestWorkItem(scope.ID, "Late leaf",
		testutil.WithCreatedAt(created), testutil.WithStatus(domain.StatusActive))
	require.NoError(t, itemRepo.Create(ctx, w))

	resp, err := svc.Daily(ctx, app.NewRollupRequest(scope.ID))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Series)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), resp.Series[0].Date,
		"series starts at scope creation when earlier than first leaf")
	assert.Equal(t, 0, resp.Series[0].TotalCount)
}
