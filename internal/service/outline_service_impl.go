package service

import (
	"context"
	"time"

	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/outline"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/google/uuid"
)

type outlineService struct {
	workItems repository.WorkItemRepo
	deps      repository.DependencyRepo
	uow       db.UnitOfWork
}

func NewOutlineService(workItems repository.WorkItemRepo, deps repository.DependencyRepo, uow db.UnitOfWork) OutlineService {
	return &outlineService{workItems: workItems, deps: deps, uow: uow}
}

// AddItem inserts a work item into its scope's outline. The item's ParentID
// selects the parent (nil for root); a non-nil order inserts at that sibling
// position (positive, or ErrInvalidOrder), otherwise the item is appended last.
func (s *outlineService) AddItem(ctx context.Context, w *domain.WorkItem, order *int) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	if w.Status == "" {
		w.Status = domain.StatusProposed
	}
	if order != nil {
		if *order <= 0 {
			return outline.ErrInvalidOrder
		}
		w.OrderIndex = *order
	} else {
		w.OrderIndex = 0
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		o, err := loadOutline(ctx, txItems, txDeps, w.ScopeID)
		if err != nil {
			return err
		}
		before := snapshotPositions(o)
		if err := o.AddChild(w); err != nil {
			return err
		}
		if err := txItems.Create(ctx, w); err != nil {
			return err
		}
		return persistMoved(ctx, txItems, o, before, now)
	})
}

func (s *outlineService) Move(ctx context.Context, id string, newParentID *string, newOrder *int) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		node, err := txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		o, err := loadOutline(ctx, txItems, txDeps, node.ScopeID)
		if err != nil {
			return err
		}
		before := snapshotPositions(o)
		if err := o.Reparent(id, newParentID, newOrder); err != nil {
			return err
		}
		return persistMoved(ctx, txItems, o, before, now)
	})
}

func (s *outlineService) SetOrder(ctx context.Context, id string, order int) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		node, err := txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		o, err := loadOutline(ctx, txItems, txDeps, node.ScopeID)
		if err != nil {
			return err
		}
		before := snapshotPositions(o)
		if err := o.SetOrder(id, order); err != nil {
			return err
		}
		return persistMoved(ctx, txItems, o, before, now)
	})
}

// Remove deletes an item, or with cascade its whole subtree. Active dependency
// edges touching the removed nodes block the call either way.
func (s *outlineService) Remove(ctx context.Context, id string, cascade bool) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		node, err := txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		o, err := loadOutline(ctx, txItems, txDeps, node.ScopeID)
		if err != nil {
			return err
		}
		before := snapshotPositions(o)

		removed := []string{id}
		if cascade {
			removed, err = o.DeleteCascade(id)
		} else {
			err = o.Delete(id)
		}
		if err != nil {
			return err
		}

		// Children before parents to keep row references valid.
		for i := len(removed) - 1; i >= 0; i-- {
			if err := txItems.Delete(ctx, removed[i]); err != nil {
				return err
			}
		}
		return persistMoved(ctx, txItems, o, before, now)
	})
}

// Tree returns the scope's items depth-first, roots first, siblings in order.
func (s *outlineService) Tree(ctx context.Context, scopeID string) ([]*domain.WorkItem, error) {
	o, err := loadOutline(ctx, s.workItems, s.deps, scopeID)
	if err != nil {
		return nil, err
	}
	return o.Nodes(), nil
}
