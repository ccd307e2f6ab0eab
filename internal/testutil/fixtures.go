package testutil

import (
	"time"

	"github.com/ameliebergh/traject/internal/domain"
	"github.com/google/uuid"
)

// FixtureNow is the fixed reference instant fixtures are built around, so
// tests can reason about dates without touching the wall clock.
var FixtureNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// Scope options
type ScopeOption func(*domain.Scope)

func WithScopeCreatedAt(t time.Time) ScopeOption {
	return func(s *domain.Scope) {
		s.CreatedAt = t
	}
}

func NewTestScope(name string, opts ...ScopeOption) *domain.Scope {
	s := &domain.Scope{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: FixtureNow.AddDate(0, -1, 0),
		UpdatedAt: FixtureNow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithParent(parentID string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.ParentID = &parentID
	}
}

func WithOrder(order int) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.OrderIndex = order
	}
}

func WithStatus(s domain.StatusCategory) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Status = s
	}
}

func WithEffort(effort int) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Effort = &effort
	}
}

func WithCreatedAt(t time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.CreatedAt = t
	}
}

func WithDoneAt(t time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.DoneAt = &t
		w.Status = domain.StatusDone
	}
}

func NewTestWorkItem(scopeID, title string, opts ...WorkItemOption) *domain.WorkItem {
	w := &domain.WorkItem{
		ID:         uuid.New().String(),
		ScopeID:    scopeID,
		OrderIndex: 1,
		Title:      title,
		Status:     domain.StatusProposed,
		CreatedAt:  FixtureNow.AddDate(0, 0, -14),
		UpdatedAt:  FixtureNow,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewTestDependency creates an active edge between two items with derived
// state and health.
func NewTestDependency(sourceID, targetID string, sourceStatus domain.StatusCategory) *domain.Dependency {
	d, err := domain.NewDependency(sourceID, targetID, sourceStatus, nil, nil, FixtureNow)
	if err != nil {
		panic(err)
	}
	d.ID = uuid.New().String()
	return d
}
