package service

import (
	"context"
	"time"

	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/google/uuid"
)

type dependencyService struct {
	workItems repository.WorkItemRepo
	deps      repository.DependencyRepo
	uow       db.UnitOfWork
}

func NewDependencyService(workItems repository.WorkItemRepo, deps repository.DependencyRepo, uow db.UnitOfWork) DependencyService {
	return &dependencyService{workItems: workItems, deps: deps, uow: uow}
}

// Link adds a predecessor -> successor edge. The whole scope graph is loaded
// so duplicate and cycle checks see every active edge before the row lands.
func (s *dependencyService) Link(ctx context.Context, sourceID, targetID string, now time.Time) (*domain.Dependency, error) {
	var created *domain.Dependency
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		source, err := txItems.GetByID(ctx, sourceID)
		if err != nil {
			return err
		}
		o, err := loadOutline(ctx, txItems, txDeps, source.ScopeID)
		if err != nil {
			return err
		}

		d, err := domain.NewDependency(sourceID, targetID, source.Status, nil, nil, now)
		if err != nil {
			return err
		}
		d.ID = uuid.New().String()

		if err := o.AddEdge(d); err != nil {
			return err
		}
		if err := txDeps.Create(ctx, d); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Unlink soft-deletes the active edge for the pair, stamping removal metadata.
// An already-removed edge reports ErrNotFound rather than silent success.
func (s *dependencyService) Unlink(ctx context.Context, sourceID, targetID string, when time.Time, removedByID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		d, err := txDeps.GetByPair(ctx, sourceID, targetID)
		if err != nil {
			return err
		}
		if err := d.Remove(when, removedByID); err != nil {
			return err
		}
		return txDeps.Update(ctx, d)
	})
}

func (s *dependencyService) SetSourcePlanned(ctx context.Context, sourceID, targetID string, planned *time.Time, now time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		d, err := txDeps.GetByPair(ctx, sourceID, targetID)
		if err != nil {
			return err
		}
		source, err := txItems.GetByID(ctx, sourceID)
		if err != nil {
			return err
		}
		if err := d.UpdateSourceDetails(source.Status, planned, now); err != nil {
			return err
		}
		return txDeps.Update(ctx, d)
	})
}

func (s *dependencyService) SetTargetPlanned(ctx context.Context, sourceID, targetID string, planned *time.Time, now time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		d, err := txDeps.GetByPair(ctx, sourceID, targetID)
		if err != nil {
			return err
		}
		if err := d.UpdateTargetPlannedDate(planned, now); err != nil {
			return err
		}
		return txDeps.Update(ctx, d)
	})
}

func (s *dependencyService) ListByScope(ctx context.Context, scopeID string, includeRemoved bool) ([]*domain.Dependency, error) {
	return s.deps.ListByScope(ctx, scopeID, includeRemoved)
}
