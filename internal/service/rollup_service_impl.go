package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/app"
	"github.com/ameliebergh/traject/internal/domain"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/ameliebergh/traject/internal/rollup"
)

type rollupService struct {
	scopes    repository.ScopeRepo
	workItems repository.WorkItemRepo
	observer  UseCaseObserver
}

func NewRollupService(scopes repository.ScopeRepo, workItems repository.WorkItemRepo, observers ...UseCaseObserver) RollupService {
	return &rollupService{
		scopes:    scopes,
		workItems: workItems,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Daily selects the scope's leaf items (optionally only the subtree under
// RootID) and runs the rollup engine over their snapshots.
func (s *rollupService) Daily(ctx context.Context, req app.RollupRequest) (resp *app.RollupResponse, err error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	startedAt := now
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "rollup-daily",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"scope_id": req.ScopeID},
		})
	}()

	if req.Start != nil && req.End != nil && req.End.Before(*req.Start) {
		return nil, &app.RollupError{Code: app.RollupErrInvalidWindow, Message: "end date before start date"}
	}

	scope, err := s.scopes.GetByID(ctx, req.ScopeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.RollupError{Code: app.RollupErrInvalidScope, Message: "unknown scope " + req.ScopeID}
		}
		return nil, fmt.Errorf("loading scope: %w", err)
	}

	items, err := s.workItems.ListByScope(ctx, req.ScopeID)
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}

	leaves, err := selectLeaves(items, req.RootID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.ProgressSnapshot, 0, len(leaves))
	for _, w := range leaves {
		snapshots = append(snapshots, w.Snapshot())
	}

	input := rollup.Input{
		Snapshots: snapshots,
		Start:     req.Start,
		End:       req.End,
		DoneOnly:  req.DoneOnly,
		UseEffort: req.UseEffort,
	}
	if req.RootID == nil {
		sc := scope.CreatedAt
		input.ScopeCreated = &sc
	}

	series := rollup.Compute(input)

	resp = &app.RollupResponse{
		GeneratedAt: now,
		ScopeID:     scope.ID,
		ScopeName:   scope.Name,
		LeafCount:   len(leaves),
		Series:      series,
	}
	if len(series) > 0 {
		resp.Latest = &series[len(series)-1]
	}
	if len(leaves) == 0 {
		resp.Warnings = append(resp.Warnings, "no leaf items in range")
	}
	return resp, nil
}

// selectLeaves keeps only items without children, restricted to the subtree
// under rootID when given (the root itself counts if it is a leaf).
func selectLeaves(items []*domain.WorkItem, rootID *string) ([]*domain.WorkItem, error) {
	byID := make(map[string]*domain.WorkItem, len(items))
	hasChildren := make(map[string]bool)
	for _, w := range items {
		byID[w.ID] = w
	}
	for _, w := range items {
		if w.ParentID != nil {
			hasChildren[*w.ParentID] = true
		}
	}

	if rootID != nil {
		if _, ok := byID[*rootID]; !ok {
			return nil, &app.RollupError{Code: app.RollupErrUnknownRoot, Message: "unknown root item " + *rootID}
		}
	}

	var leaves []*domain.WorkItem
	for _, w := range items {
		if hasChildren[w.ID] {
			continue
		}
		if rootID != nil && !underRoot(byID, w, *rootID) {
			continue
		}
		leaves = append(leaves, w)
	}
	return leaves, nil
}

func underRoot(byID map[string]*domain.WorkItem, w *domain.WorkItem, rootID string) bool {
	for n := w; n != nil; {
		if n.ID == rootID {
			return true
		}
		if n.ParentID == nil {
			return false
		}
		n = byID[*n.ParentID]
	}
	return false
}
