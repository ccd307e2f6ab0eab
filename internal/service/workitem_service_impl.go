package service

import (
	"context"
	"time"

	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
)

type workItemService struct {
	workItems repository.WorkItemRepo
	deps      repository.DependencyRepo
	uow       db.UnitOfWork
}

func NewWorkItemService(workItems repository.WorkItemRepo, deps repository.DependencyRepo, uow db.UnitOfWork) WorkItemService {
	return &workItemService{workItems: workItems, deps: deps, uow: uow}
}

func (s *workItemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.workItems.GetByID(ctx, id)
}

func (s *workItemService) ListByScope(ctx context.Context, scopeID string) ([]*domain.WorkItem, error) {
	return s.workItems.ListByScope(ctx, scopeID)
}

func (s *workItemService) Rename(ctx context.Context, id, title string) error {
	w, err := s.workItems.GetByID(ctx, id)
	if err != nil {
		return err
	}
	w.Title = title
	w.UpdatedAt = time.Now().UTC()
	return s.workItems.Update(ctx, w)
}

func (s *workItemService) SetEffort(ctx context.Context, id string, effort *int) error {
	w, err := s.workItems.GetByID(ctx, id)
	if err != nil {
		return err
	}
	w.Effort = effort
	w.UpdatedAt = time.Now().UTC()
	return s.workItems.Update(ctx, w)
}

// SetStatus changes an item's status and, in the same transaction, recomputes
// state and health on every active edge where the item is the predecessor.
func (s *workItemService) SetStatus(ctx context.Context, id string, status domain.StatusCategory, now time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		w, err := txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		w.SetStatus(status, now)
		if err := txItems.Update(ctx, w); err != nil {
			return err
		}

		edges, err := txDeps.ListForItem(ctx, id, false)
		if err != nil {
			return err
		}
		for _, e := range edges {
			if e.SourceID != id {
				continue
			}
			if err := e.UpdateSourceDetails(status, e.SourcePlannedOn, now); err != nil {
				return err
			}
			if err := txDeps.Update(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}
