package report

import (
	"sort"
	"strings"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
)

// Statement is a printable billing summary over a project/month selection.
// Entries are sorted ascending by start time, the opposite of the main log,
// because invoices read chronologically.
type Statement struct {
	Entries       []domain.TimeEntry
	TotalHours    float64
	TotalEarnings float64
	EntryCount    int
	PeriodLabel   string
}

// BuildStatement filters entries by the project set times the month set and
// totals them. Unlike the timesheet filter there is no whole-year fallback: a
// month must be explicitly selected for any data to appear. Totals use each
// entry's stored duration and its own rate snapshot.
func BuildStatement(entries []domain.TimeEntry, projects, months map[string]bool) Statement {
	st := Statement{PeriodLabel: PeriodLabel(keys(months))}
	if len(projects) == 0 || len(months) == 0 {
		return st
	}

	for i := range entries {
		e := entries[i]
		if !projects[e.ProjectID] || !months[e.MonthKey()] {
			continue
		}
		st.Entries = append(st.Entries, e)
		st.TotalHours += e.Duration / 3600
		st.TotalEarnings += e.Earnings()
	}
	sort.SliceStable(st.Entries, func(i, j int) bool {
		return st.Entries[i].StartTime < st.Entries[j].StartTime
	})
	st.EntryCount = len(st.Entries)
	return st
}

// PeriodLabel synthesizes a human period heading from "2006-01" month keys:
// a single month prints as its full name with the year, several months within
// one year as a comma-joined abbreviated list plus the year, and months
// spanning different years each as a full "Month Year" pair.
func PeriodLabel(months []string) string {
	parsed := make([]time.Time, 0, len(months))
	for _, m := range months {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return ""
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	if len(parsed) == 1 {
		return parsed[0].Format("January 2006")
	}

	sameYear := true
	for _, t := range parsed[1:] {
		if t.Year() != parsed[0].Year() {
			sameYear = false
			break
		}
	}

	names := make([]string, len(parsed))
	if sameYear {
		for i, t := range parsed {
			names[i] = t.Format("Jan")
		}
		return strings.Join(names, ", ") + " " + parsed[0].Format("2006")
	}
	for i, t := range parsed {
		names[i] = t.Format("January 2006")
	}
	return strings.Join(names, ", ")
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
