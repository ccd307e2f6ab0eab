package domain

// StatusCategory is the coarse lifecycle bucket a work item's board status
// maps into. Every concrete status in the surrounding system folds into one
// of these four.
type StatusCategory string

const (
	StatusProposed StatusCategory = "proposed"
	StatusActive   StatusCategory = "active"
	StatusDone     StatusCategory = "done"
	StatusRemoved  StatusCategory = "removed"
)

// ValidStatusCategories is the canonical set of accepted status category strings.
var ValidStatusCategories = map[string]bool{
	"proposed": true, "active": true, "done": true, "removed": true,
}

type DependencyState string

const (
	DependencyToDo       DependencyState = "to_do"
	DependencyInProgress DependencyState = "in_progress"
	DependencyDone       DependencyState = "done"
	DependencyRemoved    DependencyState = "removed"
)

type DependencyHealth string

const (
	HealthHealthy   DependencyHealth = "healthy"
	HealthAtRisk    DependencyHealth = "at_risk"
	HealthUnhealthy DependencyHealth = "unhealthy"
)

// DependencyStateFromStatus maps a predecessor's status category to the
// dependency state it induces. The mapping is total over StatusCategory;
// anything unrecognized is treated as not yet started.
func DependencyStateFromStatus(c StatusCategory) DependencyState {
	switch c {
	case StatusActive:
		return DependencyInProgress
	case StatusDone:
		return DependencyDone
	case StatusRemoved:
		return DependencyRemoved
	default:
		return DependencyToDo
	}
}

// IterationType distinguishes sprint-style timeboxes from other groupings.
type IterationType string

const (
	IterationSprint    IterationType = "sprint"
	IterationMilestone IterationType = "milestone"
)

type IterationState string

const (
	IterationFuture    IterationState = "future"
	IterationActive    IterationState = "active"
	IterationCompleted IterationState = "completed"
)
