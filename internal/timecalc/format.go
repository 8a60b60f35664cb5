package timecalc

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatDuration formats seconds as zero-padded HH:MM:SS. Hours are not
// wrapped at 24, so multi-day totals render as e.g. "25:01:01".
func FormatDuration(seconds float64) string {
	total := int64(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDurationHuman formats seconds as "1h 30m", or "45m" when under an hour.
func FormatDurationHuman(seconds float64) string {
	total := int64(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatCurrency renders a two-decimal euro amount in the it-IT layout:
// dot-separated thousands, comma decimals, trailing euro sign.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%s,%02d €", sign, b.String(), frac)
}

// FormatDate renders an epoch-ms timestamp as a short local date, e.g.
// "Mon 02 Jan".
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).Format("Mon 02 Jan")
}

// FormatClock renders an epoch-ms timestamp as local "15:04".
func FormatClock(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

// FormatDayHeading renders a date key ("2006-01-02") as a long heading like
// "Monday, 02 January 2006". Unparseable keys are returned as-is.
func FormatDayHeading(dateKey string) string {
	t, err := time.ParseInLocation("2006-01-02", dateKey, time.Local)
	if err != nil {
		return dateKey
	}
	return t.Format("Monday, 02 January 2006")
}
