package service

import (
	"context"
	"testing"

	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/outline"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/ameliebergh/traject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOutlineService(t *testing.T) (OutlineService, *domain.Scope, repository.WorkItemRepo, repository.DependencyRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	scopeRepo := repository.NewSQLiteScopeRepo(database)
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	uow := testutil.NewTestUoW(database)
	svc := NewOutlineService(itemRepo, depRepo, uow)

	scope := testutil.NewTestScope("Outline")
	require.NoError(t, scopeRepo.Create(context.Background(), scope))
	return svc, scope, itemRepo, depRepo
}

func addRoot(t *testing.T, svc OutlineService, scopeID, title string) *domain.WorkItem {
	t.Helper()
	w := &domain.WorkItem{ScopeID: scopeID, Title: title}
	require.NoError(t, svc.AddItem(context.Background(), w, nil))
	return w
}

func TestOutlineService_AddItemAppendsSiblings(t *testing.T) {
	svc, scope, _, _ := setupOutlineService(t)

	a := addRoot(t, svc, scope.ID, "First")
	b := addRoot(t, svc, scope.ID, "Second")

	assert.Equal(t, 1, a.OrderIndex)
	assert.Equal(t, 2, b.OrderIndex)
}

func TestOutlineService_AddItemRejectsNonPositiveOrder(t *testing.T) {
	svc, scope, itemRepo, _ := setupOutlineService(t)
	ctx := context.Background()

	for _, order := range []int{0, -1} {
		bad := order
		w := &domain.WorkItem{ScopeID: scope.ID, Title: "Misplaced"}
		err := svc.AddItem(ctx, w, &bad)
		assert.ErrorIs(t, err, outline.ErrInvalidOrder)
	}

	items, err := itemRepo.ListByScope(ctx, scope.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOutlineService_AddItemInsertShiftsSiblings(t *testing.T) {
	svc, scope, itemRepo, _ := setupOutlineService(t)
	ctx := context.Background()

	a := addRoot(t, svc, scope.ID, "First")
	b := addRoot(t, svc, scope.ID, "Second")

	one := 1
	c := &domain.WorkItem{ScopeID: scope.ID, Title: "Pushed in front"}
	require.NoError(t, svc.AddItem(ctx, c, &one))
	assert.Equal(t, 1, c.OrderIndex)

	// The shift is persisted, not just in memory.
	fetchedA, err := itemRepo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	fetchedB, err := itemRepo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetchedA.OrderIndex)
	assert.Equal(t, 3, fetchedB.OrderIndex)
}

func TestOutlineService_AddItemUnderParent(t *testing.T) {
	svc, scope, _, _ := setupOutlineService(t)
	ctx := context.Background()

	parent := addRoot(t, svc, scope.ID, "Parent")
	child := &domain.WorkItem{ScopeID: scope.ID, ParentID: &parent.ID, Title: "Child"}
	require.NoError(t, svc.AddItem(ctx, child, nil))
	assert.Equal(t, 1, child.OrderIndex)

	tree, err := svc.Tree(ctx, scope.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, parent.ID, tree[0].ID)
	assert.Equal(t, child.ID, tree[1].ID)
}

func TestOutlineService_MovePersistsBothSiblingLists(t *testing.T) {
	svc, scope, itemRepo, _ := setupOutlineService(t)
	ctx := context.Background()

	p1 := addRoot(t, svc, scope.ID, "Parent 1")
	p2 := addRoot(t, svc, scope.ID, "Parent 2")
	c1 := &domain.WorkItem{ScopeID: scope.ID, ParentID: &p1.ID, Title: "Child 1"}
	c2 := &domain.WorkItem{ScopeID: scope.ID, ParentID: &p1.ID, Title: "Child 2"}
	require.NoError(t, svc.AddItem(ctx, c1, nil))
	require.NoError(t, svc.AddItem(ctx, c2, nil))

	require.NoError(t, svc.Move(ctx, c1.ID, &p2.ID, nil))

	moved, err := itemRepo.GetByID(ctx, c1.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, p2.ID, *moved.ParentID)
	assert.Equal(t, 1, moved.OrderIndex)

	// Old sibling list compacted back to 1..N.
	stayed, err := itemRepo.GetByID(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stayed.OrderIndex)
}

func TestOutlineService_MoveUnderDescendantFails(t *testing.T) {
	svc, scope, itemRepo, _ := setupOutlineService(t)
	ctx := context.Background()

	parent := addRoot(t, svc, scope.ID, "Parent")
	child := &domain.WorkItem{ScopeID: scope.ID, ParentID: &parent.ID, Title: "Child"}
	require.NoError(t, svc.AddItem(ctx, child, nil))

	err := svc.Move(ctx, parent.ID, &child.ID, nil)
	assert.ErrorIs(t, err, outline.ErrCircularReference)

	// Nothing persisted by the failed call.
	fetched, err := itemRepo.GetByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ParentID)
}

func TestOutlineService_SetOrder(t *testing.T) {
	svc, scope, itemRepo, _ := setupOutlineService(t)
	ctx := context.Background()

	a := addRoot(t, svc, scope.ID, "A")
	b := addRoot(t, svc, scope.ID, "B")
	c := addRoot(t, svc, scope.ID, "C")

	require.NoError(t, svc.SetOrder(ctx, c.ID, 1))

	orders := map[string]int{}
	for _, id := range []string{a.ID, b.ID, c.ID} {
		w, err := itemRepo.GetByID(ctx, id)
		require.NoError(t, err)
		orders[id] = w.OrderIndex
	}
	assert.Equal(t, 1, orders[c.ID])
	assert.Equal(t, 2, orders[a.ID])
	assert.Equal(t, 3, orders[b.ID])
}

func TestOutlineService_RemoveBlockedByChildren(t *testing.T) {
	svc, scope, _, _ := setupOutlineService(t)
	ctx := context.Background()

	parent := addRoot(t, svc, scope.ID, "Parent")
	child := &domain.WorkItem{ScopeID: scope.ID, ParentID: &parent.ID, Title: "Child"}
	require.NoError(t, svc.AddItem(ctx, child, nil))

	err := svc.Remove(ctx, parent.ID, false)
	assert.ErrorIs(t, err, outline.ErrHasChildren)
}

func TestOutlineService_RemoveCascadeDeletesSubtree(t *testing.T) {
	svc, scope, itemRepo, _ := setupOutlineService(t)
	ctx := context.Background()

	parent := addRoot(t, svc, scope.ID, "Parent")
	sibling := addRoot(t, svc, scope.ID, "Sibling")
	child := &domain.WorkItem{ScopeID: scope.ID, ParentID: &parent.ID, Title: "Child"}
	require.NoError(t, svc.AddItem(ctx, child, nil))

	require.NoError(t, svc.Remove(ctx, parent.ID, true))

	for _, id := range []string{parent.ID, child.ID} {
		_, err := itemRepo.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}

	// The surviving sibling compacts to the front.
	s, err := itemRepo.GetByID(ctx, sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.OrderIndex)
}

func TestOutlineService_RemoveBlockedByActiveDependency(t *testing.T) {
	svc, scope, _, depRepo := setupOutlineService(t)
	ctx := context.Background()

	a := addRoot(t, svc, scope.ID, "A")
	b := addRoot(t, svc, scope.ID, "B")
	require.NoError(t, depRepo.Create(ctx, testutil.NewTestDependency(a.ID, b.ID, domain.StatusProposed)))

	err := svc.Remove(ctx, a.ID, false)
	assert.ErrorIs(t, err, outline.ErrHasActiveDependencies)
}

func TestOutlineService_TreeDepthFirstOrder(t *testing.T) {
	svc, scope, _, _ := setupOutlineService(t)
	ctx := context.Background()

	a := addRoot(t, svc, scope.ID, "A")
	c := addRoot(t, svc, scope.ID, "C")
	b := &domain.WorkItem{ScopeID: scope.ID, ParentID: &a.ID, Title: "B"}
	require.NoError(t, svc.AddItem(ctx, b, nil))

	tree, err := svc.Tree(ctx, scope.ID)
	require.NoError(t, err)
	var ids []string
	for _, n := range tree {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids)
}
