package report

import (
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
)

// Window is one of the fixed lookback ranges offered by the dashboard.
type Window string

const (
	Last7Days   Window = "7d"
	Last14Days  Window = "14d"
	MonthToDate Window = "month"
)

// StartDay returns the first calendar day of the window, at local midnight.
// Last7Days covers today plus the previous six days; MonthToDate runs from
// the 1st of the current month through today inclusive.
func (w Window) StartDay(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch w {
	case Last14Days:
		return today.AddDate(0, 0, -13)
	case MonthToDate:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return today.AddDate(0, 0, -6)
	}
}

// ProjectShare is one slice of the hours-per-project breakdown.
type ProjectShare struct {
	ProjectID string
	Name      string
	Color     string
	Hours     float64
}

// DayPoint is one bucket of the hours-per-day trend series.
type DayPoint struct {
	Date  string // "2006-01-02"
	Hours float64
}

// dashboardDuration prefers the stored duration and falls back to the
// timestamp difference for finished entries that predate the field. Entries
// still running contribute nothing here.
func dashboardDuration(e *domain.TimeEntry) float64 {
	if e.Duration > 0 {
		return e.Duration
	}
	if e.EndTime != nil {
		return float64(*e.EndTime-e.StartTime) / 1000
	}
	return 0
}

// ProjectBreakdown sums hours per project over the window, dropping projects
// with no time. Everything is recomputed from the full entry list on each
// call; switching windows never reuses previous results.
func ProjectBreakdown(entries []domain.TimeEntry, projects []domain.Project, w Window, now time.Time) []ProjectShare {
	startMs := w.StartDay(now).UnixMilli()

	var shares []ProjectShare
	for _, p := range projects {
		var seconds float64
		for i := range entries {
			if entries[i].ProjectID != p.ID || entries[i].StartTime < startMs {
				continue
			}
			seconds += dashboardDuration(&entries[i])
		}
		if seconds > 0 {
			shares = append(shares, ProjectShare{
				ProjectID: p.ID,
				Name:      p.Name,
				Color:     p.Color,
				Hours:     seconds / 3600,
			})
		}
	}
	return shares
}

// DailySeries buckets hours per calendar day from the window start through
// today inclusive, zero-filling days with no entries.
func DailySeries(entries []domain.TimeEntry, w Window, now time.Time) []DayPoint {
	start := w.StartDay(now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var series []DayPoint
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		var seconds float64
		for i := range entries {
			if entries[i].DateKey() == key {
				seconds += dashboardDuration(&entries[i])
			}
		}
		series = append(series, DayPoint{Date: key, Hours: seconds / 3600})
	}
	return series
}
