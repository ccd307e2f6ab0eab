package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ameliebergh/traject/internal/outline"
	"github.com/ameliebergh/traject/internal/repository"
)

// nodePos captures a node's tree position for change detection after an
// outline mutation. Root nodes use an empty parent.
type nodePos struct {
	parent string
	order  int
}

func loadOutline(ctx context.Context, items repository.WorkItemRepo, deps repository.DependencyRepo, scopeID string) (*outline.Outline, error) {
	nodes, err := items.ListByScope(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("loading outline nodes: %w", err)
	}
	edges, err := deps.ListByScope(ctx, scopeID, true)
	if err != nil {
		return nil, fmt.Errorf("loading outline edges: %w", err)
	}
	return outline.Load(scopeID, nodes, edges)
}

func snapshotPositions(o *outline.Outline) map[string]nodePos {
	pos := make(map[string]nodePos, len(o.Nodes()))
	for _, n := range o.Nodes() {
		pos[n.ID] = nodePos{parent: strOrEmpty(n.ParentID), order: n.OrderIndex}
	}
	return pos
}

// persistMoved writes back every pre-existing node whose parent or order
// changed since the snapshot. Newly added nodes are the caller's to create.
func persistMoved(ctx context.Context, items repository.WorkItemRepo, o *outline.Outline, before map[string]nodePos, now time.Time) error {
	for _, n := range o.Nodes() {
		prev, ok := before[n.ID]
		if !ok {
			continue
		}
		if prev.parent == strOrEmpty(n.ParentID) && prev.order == n.OrderIndex {
			continue
		}
		n.UpdatedAt = now
		if err := items.Update(ctx, n); err != nil {
			return fmt.Errorf("persisting moved node %s: %w", n.ID, err)
		}
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
