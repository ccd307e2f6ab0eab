package domain

import (
	"fmt"
	"time"
)

// MaxDate is the sentinel substituted for an open-ended range's missing end.
// Matches the largest date the surrounding system can represent.
var MaxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// ErrInvalidRange indicates a range whose end precedes its start.
var ErrInvalidRange = fmt.Errorf("range start must not be after end")

// DateOnly truncates an instant to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a closed-closed calendar date range. A nil end means the range
// is open-ended ("until further notice"). Immutable; all operations are pure.
type DateRange struct {
	start time.Time
	end   *time.Time
}

// NewDateRange creates a range from start to end inclusive. End may be nil
// for an open-ended range. Fails with ErrInvalidRange when end is present
// and precedes start. Both bounds are truncated to calendar dates.
func NewDateRange(start time.Time, end *time.Time) (DateRange, error) {
	s := DateOnly(start)
	if end == nil {
		return DateRange{start: s}, nil
	}
	e := DateOnly(*end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, s.Format("2006-01-02"), e.Format("2006-01-02"))
	}
	return DateRange{start: s, end: &e}, nil
}

// MustDateRange is NewDateRange for statically known-good bounds. Panics on
// error; intended for fixtures and literals only.
func MustDateRange(start time.Time, end *time.Time) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r DateRange) Start() time.Time { return r.start }

// End returns the explicit end, or nil when the range is open-ended.
func (r DateRange) End() *time.Time {
	if r.end == nil {
		return nil
	}
	e := *r.end
	return &e
}

func (r DateRange) IsOpenEnded() bool { return r.end == nil }

// EffectiveEnd returns the end bound used by every comparison: the explicit
// end when present, MaxDate otherwise.
func (r DateRange) EffectiveEnd() time.Time {
	if r.end == nil {
		return MaxDate
	}
	return *r.end
}

// Includes reports whether the point falls inside the range, boundaries
// included.
func (r DateRange) Includes(point time.Time) bool {
	d := DateOnly(point)
	return !d.Before(r.start) && !d.After(r.EffectiveEnd())
}

// IncludesRange reports whether other lies entirely within r.
func (r DateRange) IncludesRange(other DateRange) bool {
	return !other.start.Before(r.start) && !other.EffectiveEnd().After(r.EffectiveEnd())
}

// Overlaps reports whether the two ranges share at least one day. Boundary
// touch counts as overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.EffectiveEnd()) && !other.start.After(r.EffectiveEnd())
}

// DaysInRange returns the inclusive day count: a single-day range has
// length 1. Open-ended ranges span to MaxDate.
func (r DateRange) DaysInRange() int {
	return int(r.EffectiveEnd().Sub(r.start).Hours()/24) + 1
}

// IsPastOn reports whether the range ended before the given day. Always
// false for open-ended ranges.
func (r DateRange) IsPastOn(now time.Time) bool {
	return DateOnly(now).After(r.EffectiveEnd())
}

// IsFutureOn reports whether the range has not started by the given day.
func (r DateRange) IsFutureOn(now time.Time) bool {
	return DateOnly(now).Before(r.start)
}

// IsActiveOn reports whether the given day falls inside the range.
func (r DateRange) IsActiveOn(now time.Time) bool {
	return !r.IsPastOn(now) && !r.IsFutureOn(now)
}

// InstantRange is the closed-closed counterpart of DateRange over full
// instants, used where sub-day precision matters (timestamps rather than
// planning dates). A nil end means open-ended.
type InstantRange struct {
	start time.Time
	end   *time.Time
}

// MaxInstant is the open-ended sentinel for InstantRange.
var MaxInstant = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)

// NewInstantRange creates an instant range; fails with ErrInvalidRange when
// end is present and precedes start.
func NewInstantRange(start time.Time, end *time.Time) (InstantRange, error) {
	s := start.UTC()
	if end == nil {
		return InstantRange{start: s}, nil
	}
	e := end.UTC()
	if s.After(e) {
		return InstantRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, s.Format(time.RFC3339), e.Format(time.RFC3339))
	}
	return InstantRange{start: s, end: &e}, nil
}

func (r InstantRange) Start() time.Time { return r.start }

func (r InstantRange) End() *time.Time {
	if r.end == nil {
		return nil
	}
	e := *r.end
	return &e
}

func (r InstantRange) EffectiveEnd() time.Time {
	if r.end == nil {
		return MaxInstant
	}
	return *r.end
}

func (r InstantRange) Includes(point time.Time) bool {
	p := point.UTC()
	return !p.Before(r.start) && !p.After(r.EffectiveEnd())
}

func (r InstantRange) Overlaps(other InstantRange) bool {
	return !r.start.After(other.EffectiveEnd()) && !other.start.After(r.EffectiveEnd())
}
