package domain

import (
	"fmt"
	"time"
)

// Expense is an extra cost attached to a single time entry. Expenses have no
// lifecycle of their own; they are embedded in the owning entry.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// TimeEntry is a single logged work shift. StartTime and EndTime are epoch
// milliseconds; EndTime is nil while the shift is open-ended. Duration is the
// authoritative length in seconds, stored independently of EndTime-StartTime
// because it may hold an in-progress elapsed value or an edited figure.
type TimeEntry struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	ProjectID    string    `json:"projectId"`
	StartTime    int64     `json:"startTime"`
	EndTime      *int64    `json:"endTime"`
	Duration     float64   `json:"duration"`
	HourlyRate   *float64  `json:"hourlyRate,omitempty"`
	Expenses     []Expense `json:"expenses,omitempty"`
	IsNightShift bool      `json:"isNightShift"`
	UserID       string    `json:"user_id,omitempty"`
}

// StartAt returns the start instant in the local time zone.
func (e *TimeEntry) StartAt() time.Time {
	return time.UnixMilli(e.StartTime)
}

// EndAt returns the end instant, or the zero time for an open-ended entry.
func (e *TimeEntry) EndAt() time.Time {
	if e.EndTime == nil {
		return time.Time{}
	}
	return time.UnixMilli(*e.EndTime)
}

// Running reports whether the entry has no end time yet.
func (e *TimeEntry) Running() bool {
	return e.EndTime == nil
}

// ExpenseTotal sums the amounts of all attached expenses.
func (e *TimeEntry) ExpenseTotal() float64 {
	var total float64
	for _, x := range e.Expenses {
		total += x.Amount
	}
	return total
}

// Earnings computes the entry's billed value: hours times the entry's own
// rate snapshot, plus all expenses. A missing rate or zero duration
// contributes nothing. The rate is the one captured on the entry, so later
// changes to the project's default rate never change past earnings.
func (e *TimeEntry) Earnings() float64 {
	var total float64
	if e.HourlyRate != nil && e.Duration > 0 {
		total += (e.Duration / 3600) * *e.HourlyRate
	}
	total += e.ExpenseTotal()
	return total
}

// ComputedDuration derives the entry length in seconds from its timestamps,
// ignoring the stored Duration field. An entry with no end time is treated
// as still running and measured against now.
func (e *TimeEntry) ComputedDuration(now time.Time) float64 {
	if e.EndTime != nil {
		return float64(*e.EndTime-e.StartTime) / 1000
	}
	return float64(now.UnixMilli()-e.StartTime) / 1000
}

// MonthKey returns the entry's "YYYY-MM" key in the local time zone.
func (e *TimeEntry) MonthKey() string {
	return e.StartAt().Format("2006-01")
}

// DateKey returns the entry's "YYYY-MM-DD" key in the local time zone.
func (e *TimeEntry) DateKey() string {
	return e.StartAt().Format("2006-01-02")
}

// Night-shift detection heuristic: a shift starting in the evening or small
// hours, or ending in the early morning, counts as night work. These are
// policy constants, not a guaranteed-correct classifier.
const (
	NightStartFromHour  = 20
	NightStartUntilHour = 4
	NightEndUntilHour   = 7
)

// DetectNightShift applies the hour-of-day heuristic to a start/end pair.
func DetectNightShift(start, end time.Time) bool {
	s := start.Hour()
	e := end.Hour()
	return s >= NightStartFromHour || s <= NightStartUntilHour || e <= NightEndUntilHour
}

const clockLayout = "15:04"

// ResolveShiftTimes combines a calendar day with "HH:MM" wall-clock strings
// into start/end epoch milliseconds. When the end clock is earlier than the
// start clock the shift is assumed to cross midnight and 24h is added to the
// end before the pair is returned.
func ResolveShiftTimes(day time.Time, startClock, endClock string) (startMs, endMs int64, err error) {
	sc, err := time.Parse(clockLayout, startClock)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing start time %q: %w", startClock, err)
	}
	ec, err := time.Parse(clockLayout, endClock)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing end time %q: %w", endClock, err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), sc.Hour(), sc.Minute(), 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), ec.Hour(), ec.Minute(), 0, 0, day.Location())
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return start.UnixMilli(), end.UnixMilli(), nil
}
