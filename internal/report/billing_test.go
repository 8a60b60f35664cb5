package report

import (
	"testing"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billableEntry(projectID string, start time.Time, durationSec float64, rate float64) domain.TimeEntry {
	e := testEntry(projectID, start)
	e.Duration = durationSec
	e.HourlyRate = &rate
	return e
}

func TestBuildStatement(t *testing.T) {
	entries := []domain.TimeEntry{
		billableEntry("p1", time.Date(2024, 6, 20, 9, 0, 0, 0, time.Local), 7200, 20),
		billableEntry("p1", time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local), 3600, 20),
		billableEntry("p2", time.Date(2024, 6, 15, 9, 0, 0, 0, time.Local), 3600, 50),
		billableEntry("p1", time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local), 3600, 20),
	}

	st := BuildStatement(entries,
		map[string]bool{"p1": true},
		map[string]bool{"2024-06": true},
	)

	require.Equal(t, 2, st.EntryCount)
	// Invoices read chronologically: ascending, opposite of the main log.
	assert.True(t, st.Entries[0].StartTime < st.Entries[1].StartTime)
	assert.InDelta(t, 3.0, st.TotalHours, 1e-9)
	assert.InDelta(t, 60.0, st.TotalEarnings, 1e-9)
	assert.Equal(t, "June 2024", st.PeriodLabel)
}

func TestBuildStatementNoYearFallback(t *testing.T) {
	entries := []domain.TimeEntry{
		billableEntry("p1", time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local), 3600, 20),
	}

	// Without an explicit month nothing appears, unlike the timesheet filter.
	st := BuildStatement(entries, map[string]bool{"p1": true}, nil)
	assert.Zero(t, st.EntryCount)
	assert.Empty(t, st.Entries)
}

func TestBuildStatementEmptyProjects(t *testing.T) {
	entries := []domain.TimeEntry{
		billableEntry("p1", time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local), 3600, 20),
	}
	st := BuildStatement(entries, nil, map[string]bool{"2024-06": true})
	assert.Zero(t, st.EntryCount)
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		name   string
		months []string
		want   string
	}{
		{"single month", []string{"2024-06"}, "June 2024"},
		{"same year", []string{"2024-06", "2024-03", "2024-04"}, "Mar, Apr, Jun 2024"},
		{"across years", []string{"2024-12", "2025-01"}, "December 2024, January 2025"},
		{"empty", nil, ""},
		{"garbage ignored", []string{"junk"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodLabel(tt.months))
		})
	}
}
