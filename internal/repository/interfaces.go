package repository

import (
	"context"
	"errors"

	"github.com/ameliebergh/traject/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist. Repositories
// wrap it with entity context; callers match with errors.Is.
var ErrNotFound = errors.New("not found")

const timestampLayout = "2006-01-02T15:04:05Z07:00" // RFC 3339

type ScopeRepo interface {
	Create(ctx context.Context, s *domain.Scope) error
	GetByID(ctx context.Context, id string) (*domain.Scope, error)
	List(ctx context.Context) ([]*domain.Scope, error)
	Update(ctx context.Context, s *domain.Scope) error
	Delete(ctx context.Context, id string) error
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByScope(ctx context.Context, scopeID string) ([]*domain.WorkItem, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	GetByPair(ctx context.Context, sourceID, targetID string) (*domain.Dependency, error)
	ListByScope(ctx context.Context, scopeID string, includeRemoved bool) ([]*domain.Dependency, error)
	ListForItem(ctx context.Context, itemID string, includeRemoved bool) ([]*domain.Dependency, error)
	Update(ctx context.Context, d *domain.Dependency) error
}
