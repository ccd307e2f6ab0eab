package service

import (
	"context"
	"time"

	"github.com/ameliebergh/traject/internal/app"
	"github.com/ameliebergh/traject/internal/domain"
)

type ScopeService interface {
	Create(ctx context.Context, s *domain.Scope) error
	GetByID(ctx context.Context, id string) (*domain.Scope, error)
	List(ctx context.Context) ([]*domain.Scope, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string, force bool) error
}

// OutlineService covers structural mutations: anything that touches parent
// pointers, sibling order, or dependency edges goes through the loaded outline
// so every invariant is checked before a row changes.
type OutlineService interface {
	AddItem(ctx context.Context, w *domain.WorkItem, order *int) error
	Move(ctx context.Context, id string, newParentID *string, newOrder *int) error
	SetOrder(ctx context.Context, id string, order int) error
	Remove(ctx context.Context, id string, cascade bool) error
	Tree(ctx context.Context, scopeID string) ([]*domain.WorkItem, error)
}

type WorkItemService interface {
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByScope(ctx context.Context, scopeID string) ([]*domain.WorkItem, error)
	Rename(ctx context.Context, id, title string) error
	SetEffort(ctx context.Context, id string, effort *int) error
	SetStatus(ctx context.Context, id string, status domain.StatusCategory, now time.Time) error
}

type DependencyService interface {
	Link(ctx context.Context, sourceID, targetID string, now time.Time) (*domain.Dependency, error)
	Unlink(ctx context.Context, sourceID, targetID string, when time.Time, removedByID string) error
	SetSourcePlanned(ctx context.Context, sourceID, targetID string, planned *time.Time, now time.Time) error
	SetTargetPlanned(ctx context.Context, sourceID, targetID string, planned *time.Time, now time.Time) error
	ListByScope(ctx context.Context, scopeID string, includeRemoved bool) ([]*domain.Dependency, error)
}

type RollupService interface {
	Daily(ctx context.Context, req app.RollupRequest) (*app.RollupResponse, error)
}

type HealthService interface {
	Report(ctx context.Context, req app.HealthRequest) (*app.HealthResponse, error)
}
