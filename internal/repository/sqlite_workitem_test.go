package repository

import (
	"context"
	"testing"

	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemTestSetup(t *testing.T) (*SQLiteWorkItemRepo, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	scopeRepo := NewSQLiteScopeRepo(db)
	scope := testutil.NewTestScope("ItemTest")
	require.NoError(t, scopeRepo.Create(ctx, scope))

	return NewSQLiteWorkItemRepo(db), scope.ID
}

func TestWorkItemRepo_CreateAndGet(t *testing.T) {
	repo, scopeID := itemTestSetup(t)
	ctx := context.Background()

	item := testutil.NewTestWorkItem(scopeID, "Design review",
		testutil.WithStatus(domain.StatusActive),
		testutil.WithEffort(5),
	)
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design review", got.Title)
	assert.Equal(t, domain.StatusActive, got.Status)
	require.NotNil(t, got.Effort)
	assert.Equal(t, 5, *got.Effort)
	assert.Nil(t, got.ParentID)
	assert.Nil(t, got.DoneAt)
}

func TestWorkItemRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := itemTestSetup(t)
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRepo_ParentAndDoneRoundTrip(t *testing.T) {
	repo, scopeID := itemTestSetup(t)
	ctx := context.Background()

	parent := testutil.NewTestWorkItem(scopeID, "Epic")
	require.NoError(t, repo.Create(ctx, parent))

	child := testutil.NewTestWorkItem(scopeID, "Story",
		testutil.WithParent(parent.ID),
		testutil.WithDoneAt(testutil.FixtureNow),
	)
	require.NoError(t, repo.Create(ctx, child))

	got, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)
	require.NotNil(t, got.DoneAt)
	assert.Equal(t, domain.StatusDone, got.Status)
}

func TestWorkItemRepo_ListByScopeOrdered(t *testing.T) {
	repo, scopeID := itemTestSetup(t)
	ctx := context.Background()

	for i, title := range []string{"third", "first", "second"} {
		order := []int{3, 1, 2}[i]
		item := testutil.NewTestWorkItem(scopeID, title, testutil.WithOrder(order))
		require.NoError(t, repo.Create(ctx, item))
	}

	items, err := repo.ListByScope(ctx, scopeID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "third", items[2].Title)
}

func TestWorkItemRepo_ListChildren(t *testing.T) {
	repo, scopeID := itemTestSetup(t)
	ctx := context.Background()

	parent := testutil.NewTestWorkItem(scopeID, "Epic")
	require.NoError(t, repo.Create(ctx, parent))
	child := testutil.NewTestWorkItem(scopeID, "Story", testutil.WithParent(parent.ID))
	require.NoError(t, repo.Create(ctx, child))
	other := testutil.NewTestWorkItem(scopeID, "Unrelated")
	require.NoError(t, repo.Create(ctx, other))

	children, err := repo.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)
}

func TestWorkItemRepo_Update(t *testing.T) {
	repo, scopeID := itemTestSetup(t)
	ctx := context.Background()

	item := testutil.NewTestWorkItem(scopeID, "Task")
	require.NoError(t, repo.Create(ctx, item))

	done := testutil.FixtureNow
	item.Status = domain.StatusDone
	item.DoneAt = &done
	item.OrderIndex = 4
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, 4, got.OrderIndex)
	require.NotNil(t, got.DoneAt)
}

func TestWorkItemRepo_Delete(t *testing.T) {
	repo, scopeID := itemTestSetup(t)
	ctx := context.Background()

	item := testutil.NewTestWorkItem(scopeID, "Task")
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err := repo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
