package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/ameliebergh/traject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem_RollbackOnSiblingShiftFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	scopeRepo := repository.NewSQLiteScopeRepo(database)
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	ctx := context.Background()

	scope := testutil.NewTestScope("Rollback")
	require.NoError(t, scopeRepo.Create(ctx, scope))

	svc := NewOutlineService(itemRepo, depRepo, testutil.NewTestUoW(database))
	a := &domain.WorkItem{ScopeID: scope.ID, Title: "A"}
	b := &domain.WorkItem{ScopeID: scope.ID, Title: "B"}
	require.NoError(t, svc.AddItem(ctx, a, nil))
	require.NoError(t, svc.AddItem(ctx, b, nil))

	// ExecContext #1 = insert of the new item, #2 = first sibling shift.
	// Failing on #2 must roll the insert back too.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected sibling shift failure"),
	}
	failing := NewOutlineService(itemRepo, depRepo, failUoW)

	one := 1
	c := &domain.WorkItem{ScopeID: scope.ID, Title: "C"}
	err := failing.AddItem(ctx, c, &one)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected sibling shift failure")

	_, err = itemRepo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "insert should be rolled back")

	fetchedA, err := itemRepo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetchedA.OrderIndex, "sibling order should be unchanged after rollback")
	fetchedB, err := itemRepo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetchedB.OrderIndex, "sibling order should be unchanged after rollback")
}

func TestSetStatus_RollbackOnEdgeUpdateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	scopeRepo := repository.NewSQLiteScopeRepo(database)
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	ctx := context.Background()

	scope := testutil.NewTestScope("Rollback2")
	require.NoError(t, scopeRepo.Create(ctx, scope))
	source := testutil.NewTestWorkItem(scope.ID, "Source")
	target := testutil.NewTestWorkItem(scope.ID, "Target")
	require.NoError(t, itemRepo.Create(ctx, source))
	require.NoError(t, itemRepo.Create(ctx, target))
	dep := testutil.NewTestDependency(source.ID, target.ID, source.Status)
	require.NoError(t, depRepo.Create(ctx, dep))

	// ExecContext #1 = item update, #2 = edge update.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected edge update failure"),
	}
	svc := NewWorkItemService(itemRepo, depRepo, failUoW)

	err := svc.SetStatus(ctx, source.ID, domain.StatusDone, testutil.FixtureNow)
	require.Error(t, err)

	w, err := itemRepo.GetByID(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProposed, w.Status, "status should be unchanged after rollback")

	e, err := depRepo.GetByPair(ctx, source.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DependencyToDo, e.State, "edge state should be unchanged after rollback")
}
