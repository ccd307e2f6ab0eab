package domain

import (
	"errors"
	"time"
)

var (
	// ErrSelfDependency indicates an edge whose source and target are the same item.
	ErrSelfDependency = errors.New("an item cannot depend on itself")

	// ErrDependencyRemoved indicates a mutation attempted on a soft-deleted edge.
	ErrDependencyRemoved = errors.New("dependency has been removed")
)

// Dependency is a predecessor/successor edge between two work items. State
// and Health are derived from the inputs below and are recomputed on every
// mutation; they are never set independently.
type Dependency struct {
	ID       string
	SourceID string // predecessor
	TargetID string // successor

	State  DependencyState
	Health DependencyHealth

	SourcePlannedOn *time.Time
	TargetPlannedOn *time.Time

	IsActive    bool
	RemovedOn   *time.Time
	RemovedByID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDependency creates an active edge with state and health derived from the
// predecessor's status and both planned completion dates, evaluated at now.
// Fails with ErrSelfDependency when source and target are the same item.
func NewDependency(sourceID, targetID string, sourceStatus StatusCategory, sourcePlanned, targetPlanned *time.Time, now time.Time) (*Dependency, error) {
	if sourceID == targetID {
		return nil, ErrSelfDependency
	}
	d := &Dependency{
		SourceID:        sourceID,
		TargetID:        targetID,
		SourcePlannedOn: copyTime(sourcePlanned),
		TargetPlannedOn: copyTime(targetPlanned),
		IsActive:        true,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	d.refresh(sourceStatus, now)
	return d, nil
}

// UpdateSourceDetails records a change to the predecessor's status and
// planned date, recomputing state and health in the same step so the two are
// never observably stale relative to each other.
func (d *Dependency) UpdateSourceDetails(sourceStatus StatusCategory, sourcePlanned *time.Time, now time.Time) error {
	if !d.IsActive {
		return ErrDependencyRemoved
	}
	d.SourcePlannedOn = copyTime(sourcePlanned)
	d.refresh(sourceStatus, now)
	d.UpdatedAt = now.UTC()
	return nil
}

// UpdateTargetPlannedDate records a change to the successor's planned date
// and recomputes health. The state is unaffected (it depends only on the
// predecessor) but is re-derived from its own current value for symmetry.
func (d *Dependency) UpdateTargetPlannedDate(targetPlanned *time.Time, now time.Time) error {
	if !d.IsActive {
		return ErrDependencyRemoved
	}
	d.TargetPlannedOn = copyTime(targetPlanned)
	d.Health = ComputeDependencyHealth(d.State, d.SourcePlannedOn, d.TargetPlannedOn, now)
	d.UpdatedAt = now.UTC()
	return nil
}

// Remove soft-deletes the edge, stamping when and by whom. The row is kept
// so historical health remains recomputable. Removing an already-removed
// edge fails with ErrDependencyRemoved.
func (d *Dependency) Remove(when time.Time, byID string) error {
	if !d.IsActive {
		return ErrDependencyRemoved
	}
	w := when.UTC()
	d.IsActive = false
	d.RemovedOn = &w
	d.RemovedByID = byID
	d.UpdatedAt = w
	return nil
}

func (d *Dependency) refresh(sourceStatus StatusCategory, now time.Time) {
	d.State = DependencyStateFromStatus(sourceStatus)
	d.Health = ComputeDependencyHealth(d.State, d.SourcePlannedOn, d.TargetPlannedOn, now)
}

// ComputeDependencyHealth derives the planning health of an edge. Completed
// predecessors are always healthy and removed predecessors always unhealthy,
// regardless of dates. Otherwise a planned date only counts when it is still
// in the future relative to now; a past or absent date means unplanned.
func ComputeDependencyHealth(state DependencyState, sourcePlanned, targetPlanned *time.Time, now time.Time) DependencyHealth {
	switch state {
	case DependencyDone:
		return HealthHealthy
	case DependencyRemoved:
		return HealthUnhealthy
	}

	source := plannedInFuture(sourcePlanned, now)
	target := plannedInFuture(targetPlanned, now)

	switch {
	case source == nil && target == nil:
		return HealthAtRisk
	case source != nil && target == nil:
		return HealthHealthy
	case source == nil:
		return HealthAtRisk
	case !source.After(*target):
		return HealthHealthy
	default:
		return HealthUnhealthy
	}
}

// IterationInfo is the slice of a work item's iteration assignment the
// planned-date resolver needs.
type IterationInfo struct {
	Type  IterationType
	State IterationState
	End   *time.Time
}

// PlannedCompletionDate resolves a work item's planned completion date from
// its iteration assignment: nil unless the item sits in a sprint-type
// iteration that is not completed and whose end is strictly after now.
func PlannedCompletionDate(iter *IterationInfo, now time.Time) *time.Time {
	if iter == nil || iter.Type != IterationSprint || iter.State == IterationCompleted {
		return nil
	}
	if iter.End == nil || !iter.End.After(now) {
		return nil
	}
	return copyTime(iter.End)
}

func plannedInFuture(planned *time.Time, now time.Time) *time.Time {
	if planned == nil || !planned.After(now) {
		return nil
	}
	return planned
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := t.UTC()
	return &c
}
