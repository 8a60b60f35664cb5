package timecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{90061, "25:01:01"}, // no 24h wraparound
		{3600.9, "01:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

func TestFormatDurationHuman(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{59, "0m"},
		{60, "1m"},
		{3600, "1h 0m"},
		{5400, "1h 30m"},
		{90000, "25h 0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDurationHuman(tt.seconds))
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0,00 €", FormatCurrency(0))
	assert.Equal(t, "7,50 €", FormatCurrency(7.5))
	assert.Equal(t, "10,00 €", FormatCurrency(10))
	assert.Equal(t, "1.234,56 €", FormatCurrency(1234.56))
	assert.Equal(t, "1.234.567,89 €", FormatCurrency(1234567.891))
	assert.Equal(t, "-12,34 €", FormatCurrency(-12.34))
}

func TestFormatDayHeadingFallback(t *testing.T) {
	assert.Equal(t, "not-a-date", FormatDayHeading("not-a-date"))
}
