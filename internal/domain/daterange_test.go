package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestNewDateRange_EndBeforeStartFails(t *testing.T) {
	_, err := NewDateRange(date(2020, 1, 10), datePtr(2020, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewDateRange_SingleDay(t *testing.T) {
	r, err := NewDateRange(date(2020, 1, 5), datePtr(2020, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, r.DaysInRange())
	assert.True(t, r.Includes(date(2020, 1, 5)))
}

func TestDateRange_DaysInRange(t *testing.T) {
	r, err := NewDateRange(date(2020, 1, 1), datePtr(2020, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 10, r.DaysInRange())
}

func TestDateRange_OpenEnded(t *testing.T) {
	r, err := NewDateRange(date(2020, 1, 1), nil)
	require.NoError(t, err)

	assert.True(t, r.IsOpenEnded())
	assert.Equal(t, MaxDate, r.EffectiveEnd())
	assert.True(t, r.Includes(date(2020, 1, 1)))
	assert.True(t, r.Includes(date(2150, 6, 1)))
	assert.False(t, r.IsPastOn(date(2500, 12, 31)))

	// Length runs all the way to the domain max.
	expected := int(MaxDate.Sub(date(2020, 1, 1)).Hours()/24) + 1
	assert.Equal(t, expected, r.DaysInRange())
}

func TestDateRange_Overlaps_BoundaryTouchCounts(t *testing.T) {
	a := MustDateRange(date(2020, 1, 10), datePtr(2020, 1, 20))
	b := MustDateRange(date(2020, 1, 20), datePtr(2020, 1, 25))
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestDateRange_Overlaps_Disjoint(t *testing.T) {
	a := MustDateRange(date(2020, 1, 1), datePtr(2020, 1, 10))
	b := MustDateRange(date(2020, 1, 11), datePtr(2020, 1, 20))
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestDateRange_Overlaps_OpenEnded(t *testing.T) {
	a := MustDateRange(date(2020, 1, 1), nil)
	b := MustDateRange(date(2030, 6, 1), datePtr(2030, 6, 30))
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestDateRange_IncludesRange(t *testing.T) {
	outer := MustDateRange(date(2020, 1, 1), datePtr(2020, 12, 31))
	inner := MustDateRange(date(2020, 3, 1), datePtr(2020, 3, 31))
	assert.True(t, outer.IncludesRange(inner))
	assert.False(t, inner.IncludesRange(outer))

	open := MustDateRange(date(2020, 1, 1), nil)
	assert.True(t, open.IncludesRange(outer))
	assert.False(t, outer.IncludesRange(open))
}

func TestDateRange_ActivePastFuture(t *testing.T) {
	r := MustDateRange(date(2020, 6, 1), datePtr(2020, 6, 30))

	assert.True(t, r.IsFutureOn(date(2020, 5, 31)))
	assert.True(t, r.IsActiveOn(date(2020, 6, 1)))
	assert.True(t, r.IsActiveOn(date(2020, 6, 30)))
	assert.True(t, r.IsPastOn(date(2020, 7, 1)))

	assert.False(t, r.IsActiveOn(date(2020, 5, 31)))
	assert.False(t, r.IsActiveOn(date(2020, 7, 1)))
}

func TestDateRange_TruncatesInstants(t *testing.T) {
	r, err := NewDateRange(
		time.Date(2020, 1, 1, 23, 59, 0, 0, time.UTC),
		&[]time.Time{time.Date(2020, 1, 2, 0, 1, 0, 0, time.UTC)}[0],
	)
	require.NoError(t, err)
	assert.Equal(t, 2, r.DaysInRange())
	assert.True(t, r.Includes(time.Date(2020, 1, 2, 18, 0, 0, 0, time.UTC)))
}

func TestNewInstantRange_Validation(t *testing.T) {
	end := time.Date(2020, 1, 1, 11, 0, 0, 0, time.UTC)
	_, err := NewInstantRange(time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC), &end)
	assert.ErrorIs(t, err, ErrInvalidRange)

	r, err := NewInstantRange(time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), &end)
	require.NoError(t, err)
	assert.True(t, r.Includes(time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC)))
	assert.False(t, r.Includes(time.Date(2020, 1, 1, 11, 0, 1, 0, time.UTC)))
}

func TestInstantRange_OpenEnded(t *testing.T) {
	r, err := NewInstantRange(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, MaxInstant, r.EffectiveEnd())
	assert.True(t, r.Includes(time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)))
}
