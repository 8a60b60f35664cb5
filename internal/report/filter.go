package report

import (
	"sort"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
)

// Filter is the year/month/project predicate shared by the timesheet list,
// billing and reports views.
//
// Project selection is strict: an entry matches only if its project is in
// SelectedProjects, and an empty selection matches nothing. That guard keeps
// a "forgot to pick a client" state from producing a misleadingly full
// report. When SelectedMonths is non-empty the entry's month key must be a
// member; otherwise the entry's year must equal SelectedYear.
type Filter struct {
	SelectedYear     string          // "2006"
	SelectedMonths   map[string]bool // "2006-01" keys
	SelectedProjects map[string]bool // project IDs
}

// Matches reports whether a single entry passes the filter.
func (f Filter) Matches(e *domain.TimeEntry) bool {
	if !f.SelectedProjects[e.ProjectID] {
		return false
	}
	if len(f.SelectedMonths) > 0 {
		return f.SelectedMonths[e.MonthKey()]
	}
	return e.StartAt().Format("2006") == f.SelectedYear
}

// Apply returns the entries passing the filter, preserving input order.
// Applying the same filter twice yields the same result as once.
func (f Filter) Apply(entries []domain.TimeEntry) []domain.TimeEntry {
	out := make([]domain.TimeEntry, 0, len(entries))
	for i := range entries {
		if f.Matches(&entries[i]) {
			out = append(out, entries[i])
		}
	}
	return out
}

// AllProjects builds the default-select-all project set, so the list is
// non-empty out of the box and the user narrows down from there.
func AllProjects(projects []domain.Project) map[string]bool {
	set := make(map[string]bool, len(projects))
	for _, p := range projects {
		set[p.ID] = true
	}
	return set
}

// Periods lists the year and month keys offered for selection.
type Periods struct {
	Years  []string // "2006", descending
	Months []string // "2006-01", descending
}

// AvailablePeriods scans the entries once and collects the distinct year and
// month keys. The current real-world year is always included, even with no
// entries yet, so logging can start into a blank year.
func AvailablePeriods(entries []domain.TimeEntry, now time.Time) Periods {
	years := map[string]bool{now.Format("2006"): true}
	months := map[string]bool{}
	for i := range entries {
		years[entries[i].StartAt().Format("2006")] = true
		months[entries[i].MonthKey()] = true
	}

	p := Periods{
		Years:  make([]string, 0, len(years)),
		Months: make([]string, 0, len(months)),
	}
	for y := range years {
		p.Years = append(p.Years, y)
	}
	for m := range months {
		p.Months = append(p.Months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(p.Years)))
	sort.Sort(sort.Reverse(sort.StringSlice(p.Months)))
	return p
}
