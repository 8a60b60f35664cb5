package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveTrialEndMasksEpochDefault(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	p := UserProfile{TrialEndsAt: time.Unix(0, 0)}
	assert.Equal(t, now.AddDate(0, 0, TrialDays), p.EffectiveTrialEnd(now))

	real := now.AddDate(0, 0, 10)
	p = UserProfile{TrialEndsAt: real}
	assert.Equal(t, real, p.EffectiveTrialEnd(now))
}

func TestTrialDaysLeft(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	p := UserProfile{TrialEndsAt: now.AddDate(0, 0, 10)}
	assert.Equal(t, 10, p.TrialDaysLeft(now))

	p = UserProfile{TrialEndsAt: now.AddDate(0, 0, -5)}
	assert.Equal(t, 0, p.TrialDaysLeft(now))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&UserProfile{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&UserProfile{Role: RoleUser}).IsAdmin())
}
