package timecalc

import (
	"sort"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
)

// DayGroup is one calendar day's worth of entries together with their summed
// duration. It is derived on every call and never persisted.
type DayGroup struct {
	Date          string // "2006-01-02", local time zone
	Entries       []domain.TimeEntry
	TotalDuration float64 // seconds
}

// GroupByDay buckets entries by their local start date. Entries are sorted
// descending by start time before grouping, so within a day they keep that
// order, and groups come out most recent day first.
//
// The per-day total is recomputed from timestamps rather than read from the
// stored Duration field; an entry with no end time is measured against now,
// treating it as still running.
func GroupByDay(entries []domain.TimeEntry, now time.Time) []DayGroup {
	sorted := make([]domain.TimeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime > sorted[j].StartTime
	})

	index := make(map[string]int)
	groups := make([]DayGroup, 0)
	for _, e := range sorted {
		key := e.DateKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		groups[i].TotalDuration += e.ComputedDuration(now)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}
