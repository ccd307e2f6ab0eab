package domain

import "time"

// WorkItem is one node of a scope's outline: a single optional parent and a
// 1-based order among siblings of the same parent. Leaf items (those without
// children) contribute to the scope's progress rollup, and any item can sit
// at either end of a dependency edge.
type WorkItem struct {
	ID         string
	ScopeID    string
	ParentID   *string
	OrderIndex int
	Title      string
	Status     StatusCategory
	Effort     *int // optional sizing weight

	CreatedAt time.Time
	DoneAt    *time.Time
	UpdatedAt time.Time
}

// SetStatus moves the item to a new status and keeps the completion timestamp
// in step: entering done or removed stamps it, moving back clears it.
func (w *WorkItem) SetStatus(status StatusCategory, now time.Time) {
	switch status {
	case StatusDone, StatusRemoved:
		if w.DoneAt == nil {
			t := now
			w.DoneAt = &t
		}
	default:
		w.DoneAt = nil
	}
	w.Status = status
	w.UpdatedAt = now
}

// Snapshot projects the item into its rollup contribution.
func (w *WorkItem) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		ItemID:  w.ID,
		Created: w.CreatedAt,
		Done:    copyTime(w.DoneAt),
		Status:  w.Status,
		Effort:  w.Effort,
	}
}

// ProgressSnapshot is one leaf item's contribution to a rollup, captured
// fresh per request from current item state.
type ProgressSnapshot struct {
	ItemID  string
	Created time.Time
	Done    *time.Time
	Status  StatusCategory
	Effort  *int
}

// DailyRollup is one day of an aggregate progress series.
type DailyRollup struct {
	Date            time.Time
	TotalCount      int
	CompletedCount  int
	PercentComplete float64
}

// Scope is the aggregate unit (project, objective, iteration) whose progress
// is the aggregation of its leaf items.
type Scope struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
