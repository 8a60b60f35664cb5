package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

// NewProfile builds an approved user profile with sensible defaults.
func NewProfile(email string) *domain.UserProfile {
	return &domain.UserProfile{
		ID:                 uuid.New().String(),
		Email:              email,
		Role:               domain.RoleUser,
		SubscriptionStatus: domain.SubscriptionTrial,
		TrialEndsAt:        time.Now().UTC().AddDate(0, 0, domain.TrialDays),
		IsApproved:         true,
		CreatedAt:          time.Now().UTC(),
	}
}

// SeedProfile inserts a fresh profile and returns it.
func SeedProfile(t *testing.T, repo repository.ProfileRepo, email string) *domain.UserProfile {
	t.Helper()
	p := NewProfile(email)
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	return p
}

// NewProject builds a project owned by userID.
func NewProject(userID, name string, rate float64) *domain.Project {
	return &domain.Project{
		ID:                uuid.New().String(),
		UserID:            userID,
		Name:              name,
		Color:             domain.PaletteColor(0),
		DefaultHourlyRate: rate,
	}
}

// NewEntry builds a finished time entry of the given length, rate snapshot
// taken from rate.
func NewEntry(userID, projectID string, start time.Time, durationSec float64, rate float64) *domain.TimeEntry {
	end := start.Add(time.Duration(durationSec) * time.Second).UnixMilli()
	return &domain.TimeEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProjectID:  projectID,
		StartTime:  start.UnixMilli(),
		EndTime:    &end,
		Duration:   durationSec,
		HourlyRate: &rate,
	}
}
