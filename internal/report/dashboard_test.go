package report

import (
	"testing"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowStartDay(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.Local)

	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.Local), Last7Days.StartDay(now))
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), Last14Days.StartDay(now))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), MonthToDate.StartDay(now))
}

func TestProjectBreakdown(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local)
	projects := []domain.Project{
		{ID: "p1", Name: "Reception", Color: "#6366f1"},
		{ID: "p2", Name: "Patrol", Color: "#3b82f6"},
		{ID: "p3", Name: "Idle", Color: "#ef4444"},
	}
	entries := []domain.TimeEntry{
		billableEntry("p1", now.AddDate(0, 0, -1), 3600, 10),
		billableEntry("p1", now.AddDate(0, 0, -2), 1800, 10),
		billableEntry("p2", now.AddDate(0, 0, -3), 7200, 10),
		// Outside the 7-day window, must not count.
		billableEntry("p2", now.AddDate(0, 0, -10), 36000, 10),
	}

	shares := ProjectBreakdown(entries, projects, Last7Days, now)
	require.Len(t, shares, 2) // p3 has no hours and is dropped

	assert.Equal(t, "p1", shares[0].ProjectID)
	assert.InDelta(t, 1.5, shares[0].Hours, 1e-9)
	assert.Equal(t, "p2", shares[1].ProjectID)
	assert.InDelta(t, 2.0, shares[1].Hours, 1e-9)
}

func TestDailySeries(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local)
	entries := []domain.TimeEntry{
		billableEntry("p1", time.Date(2024, 6, 14, 9, 0, 0, 0, time.Local), 3600, 10),
		billableEntry("p1", time.Date(2024, 6, 14, 14, 0, 0, 0, time.Local), 1800, 10),
	}

	series := DailySeries(entries, Last7Days, now)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-06-09", series[0].Date)
	assert.Equal(t, "2024-06-15", series[6].Date)

	var nonZero int
	for _, p := range series {
		if p.Hours > 0 {
			nonZero++
			assert.Equal(t, "2024-06-14", p.Date)
			assert.InDelta(t, 1.5, p.Hours, 1e-9)
		}
	}
	assert.Equal(t, 1, nonZero)
}

func TestDashboardDurationFallback(t *testing.T) {
	start := time.Date(2024, 6, 14, 9, 0, 0, 0, time.Local)
	end := start.Add(2 * time.Hour).UnixMilli()

	// Stored duration wins when present.
	withStored := domain.TimeEntry{StartTime: start.UnixMilli(), EndTime: &end, Duration: 600}
	assert.Equal(t, float64(600), dashboardDuration(&withStored))

	// Finished entry predating the duration field falls back to timestamps.
	legacy := domain.TimeEntry{StartTime: start.UnixMilli(), EndTime: &end}
	assert.Equal(t, float64(7200), dashboardDuration(&legacy))

	// Running entries contribute nothing to dashboards.
	running := domain.TimeEntry{StartTime: start.UnixMilli()}
	assert.Zero(t, dashboardDuration(&running))
}
