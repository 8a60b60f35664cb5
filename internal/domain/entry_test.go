package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(v float64) *float64 { return &v }

func TestEarnings(t *testing.T) {
	t.Run("hourly only", func(t *testing.T) {
		e := TimeEntry{Duration: 3600, HourlyRate: rate(10)}
		assert.InDelta(t, 10.0, e.Earnings(), 1e-9)
	})

	t.Run("expenses only", func(t *testing.T) {
		e := TimeEntry{
			Duration:   3600,
			HourlyRate: rate(0),
			Expenses: []Expense{
				{ID: "x1", Amount: 5},
				{ID: "x2", Amount: 2.5},
			},
		}
		assert.InDelta(t, 7.5, e.Earnings(), 1e-9)
	})

	t.Run("no rate contributes nothing", func(t *testing.T) {
		e := TimeEntry{Duration: 3600}
		assert.Zero(t, e.Earnings())
	})

	t.Run("both terms", func(t *testing.T) {
		e := TimeEntry{Duration: 5400, HourlyRate: rate(20), Expenses: []Expense{{Amount: 3}}}
		assert.InDelta(t, 33.0, e.Earnings(), 1e-9)
	})
}

func TestEarningsRateSnapshot(t *testing.T) {
	// The entry stores its own rate snapshot at creation, so changing the
	// project's default rate later must not change past earnings.
	p := Project{ID: "p1", Name: "Cantiere A", DefaultHourlyRate: 20}
	e := TimeEntry{ProjectID: p.ID, Duration: 7200, HourlyRate: rate(p.DefaultHourlyRate)}
	assert.InDelta(t, 40.0, e.Earnings(), 1e-9)

	p.DefaultHourlyRate = 35
	assert.InDelta(t, 40.0, e.Earnings(), 1e-9)
}

func TestComputedDuration(t *testing.T) {
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(2 * time.Hour).UnixMilli()
	now := start.Add(30 * time.Minute)

	finished := TimeEntry{StartTime: start.UnixMilli(), EndTime: &end, Duration: 1}
	assert.Equal(t, float64(7200), finished.ComputedDuration(now))

	running := TimeEntry{StartTime: start.UnixMilli()}
	assert.Equal(t, float64(1800), running.ComputedDuration(now))
}

func TestResolveShiftTimes(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

	t.Run("same day", func(t *testing.T) {
		startMs, endMs, err := ResolveShiftTimes(day, "07:00", "15:00")
		require.NoError(t, err)
		assert.Equal(t, float64(8*3600), float64(endMs-startMs)/1000)
	})

	t.Run("crosses midnight", func(t *testing.T) {
		startMs, endMs, err := ResolveShiftTimes(day, "22:00", "06:00")
		require.NoError(t, err)
		assert.Equal(t, float64(8*3600), float64(endMs-startMs)/1000)
		assert.Equal(t, 11, time.UnixMilli(endMs).Day())
	})

	t.Run("bad clock", func(t *testing.T) {
		_, _, err := ResolveShiftTimes(day, "7am", "15:00")
		assert.Error(t, err)
	})
}

func TestDetectNightShift(t *testing.T) {
	day := func(h int) time.Time {
		return time.Date(2024, 6, 10, h, 0, 0, 0, time.Local)
	}

	assert.True(t, DetectNightShift(day(22), day(6)))
	assert.True(t, DetectNightShift(day(2), day(10)))
	assert.True(t, DetectNightShift(day(23), day(7)))
	assert.False(t, DetectNightShift(day(9), day(17)))
	assert.True(t, DetectNightShift(day(20), day(23)))
}

func TestProjectValidate(t *testing.T) {
	p := Project{Name: "Reception", DefaultHourlyRate: 10}
	require.NoError(t, p.Validate())

	p.Name = ""
	assert.Error(t, p.Validate())

	p = Project{Name: "Reception", DefaultHourlyRate: -1}
	assert.Error(t, p.Validate())

	p = Project{Name: "Reception", Shifts: []Shift{{Name: "Mattina", StartTime: "07:00"}}}
	assert.Error(t, p.Validate())
}

func TestFindShift(t *testing.T) {
	p := Project{Shifts: []Shift{
		{ID: "s1", Name: "Mattina", StartTime: "07:00", EndTime: "15:00"},
		{ID: "s2", Name: "Notte", StartTime: "22:00", EndTime: "06:00"},
	}}

	s := p.FindShift("Notte")
	require.NotNil(t, s)
	assert.Equal(t, "s2", s.ID)
	assert.Nil(t, p.FindShift("Pomeriggio"))
}
