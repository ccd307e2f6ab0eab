package rollup

import (
	"time"

	"github.com/ameliebergh/traject/internal/domain"
)

// Input describes one rollup request: the exact candidate leaf set (the
// caller selects the subtree) plus boundary pins and counting policy.
type Input struct {
	Snapshots []domain.ProgressSnapshot

	// Start pins the first day of the series. When nil the series starts at
	// the earliest leaf creation date, or the scope's own creation date if
	// that is earlier.
	Start *time.Time

	// End pins the last day of the series. When nil the series ends at the
	// latest observed activity (creation or completion) among the leaves.
	End *time.Time

	// ScopeCreated is the owning scope's creation date, used only to widen
	// an unpinned start.
	ScopeCreated *time.Time

	// DoneOnly restricts the completed count to items whose status is Done;
	// by default Removed items with a completion timestamp also count.
	DoneOnly bool

	// UseEffort weights each leaf by its effort value instead of counting 1.
	// Leaves without an effort value still count 1.
	UseEffort bool
}

// Compute produces a contiguous daily series from start to end inclusive.
// On day d a leaf counts toward the total iff it was created by d, and
// toward completed iff its completion timestamp falls on or before d.
// An empty leaf set yields an empty series.
func Compute(input Input) []domain.DailyRollup {
	// Leaves created after a pinned end have zero contribution in range and
	// must not influence the series bounds either.
	if input.End != nil {
		input.Snapshots = createdBy(input.Snapshots, domain.DateOnly(*input.End))
	}
	if len(input.Snapshots) == 0 {
		return nil
	}

	start, end, ok := seriesBounds(input)
	if !ok {
		return nil
	}

	days := int(end.Sub(start).Hours()/24) + 1
	series := make([]domain.DailyRollup, 0, days)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		var total, completed int
		for i := range input.Snapshots {
			s := &input.Snapshots[i]
			if domain.DateOnly(s.Created).After(d) {
				continue
			}
			w := weight(s, input.UseEffort)
			total += w
			if completedBy(s, d, input.DoneOnly) {
				completed += w
			}
		}

		var pct float64
		if total > 0 {
			pct = float64(completed) / float64(total)
		}

		series = append(series, domain.DailyRollup{
			Date:            d,
			TotalCount:      total,
			CompletedCount:  completed,
			PercentComplete: pct,
		})
	}

	return series
}

// seriesBounds resolves the first and last day of the series. The end is
// extended to the latest completion timestamp when every leaf has finished
// and stragglers completed after the naive end.
func seriesBounds(input Input) (start, end time.Time, ok bool) {
	var earliestCreated, latestActivity, latestDone time.Time
	allDone := true

	for i := range input.Snapshots {
		s := &input.Snapshots[i]
		created := domain.DateOnly(s.Created)
		if earliestCreated.IsZero() || created.Before(earliestCreated) {
			earliestCreated = created
		}
		if created.After(latestActivity) {
			latestActivity = created
		}
		if completedBy(s, domain.MaxDate, input.DoneOnly) {
			done := domain.DateOnly(*s.Done)
			if done.After(latestActivity) {
				latestActivity = done
			}
			if done.After(latestDone) {
				latestDone = done
			}
		} else {
			allDone = false
		}
	}

	if input.Start != nil {
		start = domain.DateOnly(*input.Start)
	} else {
		start = earliestCreated
		if input.ScopeCreated != nil {
			if sc := domain.DateOnly(*input.ScopeCreated); sc.Before(start) {
				start = sc
			}
		}
	}

	if input.End != nil {
		end = domain.DateOnly(*input.End)
	} else {
		end = latestActivity
	}

	// Lagging children finishing after the nominal end stretch the series so
	// the final day shows the scope fully complete.
	if allDone && latestDone.After(end) {
		end = latestDone
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func completedBy(s *domain.ProgressSnapshot, day time.Time, doneOnly bool) bool {
	if s.Done == nil {
		return false
	}
	if s.Status != domain.StatusDone && (doneOnly || s.Status != domain.StatusRemoved) {
		return false
	}
	return !domain.DateOnly(*s.Done).After(day)
}

func createdBy(snapshots []domain.ProgressSnapshot, day time.Time) []domain.ProgressSnapshot {
	kept := make([]domain.ProgressSnapshot, 0, len(snapshots))
	for i := range snapshots {
		if !domain.DateOnly(snapshots[i].Created).After(day) {
			kept = append(kept, snapshots[i])
		}
	}
	return kept
}

func weight(s *domain.ProgressSnapshot, useEffort bool) int {
	if useEffort && s.Effort != nil && *s.Effort > 0 {
		return *s.Effort
	}
	return 1
}
