package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ameliebergh/traject/internal/app"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
)

type healthService struct {
	scopes    repository.ScopeRepo
	workItems repository.WorkItemRepo
	deps      repository.DependencyRepo
	observer  UseCaseObserver
}

func NewHealthService(
	scopes repository.ScopeRepo,
	workItems repository.WorkItemRepo,
	deps repository.DependencyRepo,
	observers ...UseCaseObserver,
) HealthService {
	return &healthService{
		scopes:    scopes,
		workItems: workItems,
		deps:      deps,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Report evaluates every dependency edge in a scope. Health on active edges is
// recomputed against the request's now so the report is deterministic;
// removed edges keep the health recorded when they were live.
func (s *healthService) Report(ctx context.Context, req app.HealthRequest) (resp *app.HealthResponse, err error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	startedAt := now
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "health-report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"scope_id": req.ScopeID},
		})
	}()

	scope, err := s.scopes.GetByID(ctx, req.ScopeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.HealthError{Code: app.HealthErrInvalidScope, Message: "unknown scope " + req.ScopeID}
		}
		return nil, fmt.Errorf("loading scope: %w", err)
	}

	edges, err := s.deps.ListByScope(ctx, req.ScopeID, req.IncludeRemoved)
	if err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}
	items, err := s.workItems.ListByScope(ctx, req.ScopeID)
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}
	titles := make(map[string]string, len(items))
	for _, w := range items {
		titles[w.ID] = w.Title
	}

	views := make([]app.DependencyHealthView, 0, len(edges))
	var healthy, atRisk, unhealthy int
	for _, e := range edges {
		health := e.Health
		if e.IsActive {
			health = domain.ComputeDependencyHealth(e.State, e.SourcePlannedOn, e.TargetPlannedOn, now)
			switch health {
			case domain.HealthHealthy:
				healthy++
			case domain.HealthAtRisk:
				atRisk++
			case domain.HealthUnhealthy:
				unhealthy++
			}
		}
		views = append(views, app.DependencyHealthView{
			DependencyID:    e.ID,
			SourceID:        e.SourceID,
			SourceTitle:     titles[e.SourceID],
			TargetID:        e.TargetID,
			TargetTitle:     titles[e.TargetID],
			State:           e.State,
			Health:          health,
			SourcePlannedOn: formatDate(e.SourcePlannedOn),
			TargetPlannedOn: formatDate(e.TargetPlannedOn),
			IsActive:        e.IsActive,
			RemovedOn:       formatDate(e.RemovedOn),
		})
	}

	sortHealthViews(views)

	return &app.HealthResponse{
		Summary: app.HealthSummary{
			GeneratedAt:     now,
			CountsTotal:     healthy + atRisk + unhealthy,
			CountsHealthy:   healthy,
			CountsAtRisk:    atRisk,
			CountsUnhealthy: unhealthy,
			PolicyMessage:   healthPolicyMessage(atRisk, unhealthy),
		},
		ScopeID:      scope.ID,
		ScopeName:    scope.Name,
		Dependencies: views,
	}, nil
}

// sortHealthViews puts the worst news first: unhealthy, then at risk, then
// healthy; removed edges trail their group.
func sortHealthViews(views []app.DependencyHealthView) {
	sort.Slice(views, func(i, j int) bool {
		hi := healthPriority(views[i].Health)
		hj := healthPriority(views[j].Health)
		if hi != hj {
			return hi < hj
		}
		if views[i].IsActive != views[j].IsActive {
			return views[i].IsActive
		}
		return views[i].SourceTitle < views[j].SourceTitle
	})
}

func healthPriority(h domain.DependencyHealth) int {
	switch h {
	case domain.HealthUnhealthy:
		return 0
	case domain.HealthAtRisk:
		return 1
	default:
		return 2
	}
}

func healthPolicyMessage(atRisk, unhealthy int) string {
	switch {
	case unhealthy > 0:
		return "Unhealthy dependencies need replanning"
	case atRisk > 0:
		return "Some dependencies at risk, monitor closely"
	default:
		return "All dependencies healthy"
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
