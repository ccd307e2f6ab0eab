package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/google/uuid"
)

type scopeService struct {
	scopes    repository.ScopeRepo
	workItems repository.WorkItemRepo
	uow       db.UnitOfWork
}

func NewScopeService(scopes repository.ScopeRepo, workItems repository.WorkItemRepo, uow db.UnitOfWork) ScopeService {
	return &scopeService{scopes: scopes, workItems: workItems, uow: uow}
}

func (s *scopeService) Create(ctx context.Context, scope *domain.Scope) error {
	if scope.ID == "" {
		scope.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if scope.CreatedAt.IsZero() {
		scope.CreatedAt = now
	}
	scope.UpdatedAt = now
	return s.scopes.Create(ctx, scope)
}

func (s *scopeService) GetByID(ctx context.Context, id string) (*domain.Scope, error) {
	return s.scopes.GetByID(ctx, id)
}

func (s *scopeService) List(ctx context.Context) ([]*domain.Scope, error) {
	return s.scopes.List(ctx)
}

func (s *scopeService) Rename(ctx context.Context, id, name string) error {
	scope, err := s.scopes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	scope.Name = name
	scope.UpdatedAt = time.Now().UTC()
	return s.scopes.Update(ctx, scope)
}

// Delete removes a scope. Without force it refuses when the scope still holds
// work items; with force the items and their dependency rows go with it.
func (s *scopeService) Delete(ctx context.Context, id string, force bool) error {
	if _, err := s.scopes.GetByID(ctx, id); err != nil {
		return err
	}
	items, err := s.workItems.ListByScope(ctx, id)
	if err != nil {
		return err
	}
	if len(items) > 0 && !force {
		return fmt.Errorf("scope %s has %d work items; use force to delete anyway", id, len(items))
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScopeRepo(tx).Delete(ctx, id)
	})
}
