package service

import (
	"context"
	"errors"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
	observer UseCaseObserver
}

func NewProfileService(profiles repository.ProfileRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{profiles: profiles, observer: useCaseObserverOrNoop(observers)}
}

func (s *profileService) EnsureProfile(ctx context.Context, id, email string) (profile *domain.UserProfile, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "profile-ensure",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"profile_id": id},
		})
	}()

	profile, err = s.profiles.Get(ctx, id)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	profile = &domain.UserProfile{
		ID:                 id,
		Email:              email,
		Role:               domain.RoleUser,
		SubscriptionStatus: domain.SubscriptionTrial,
		TrialEndsAt:        now.AddDate(0, 0, domain.TrialDays),
		IsApproved:         false,
		CreatedAt:          now,
	}
	if err = s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	// The store may adjust fields on create (approval policy), so read
	// the persisted row back.
	return s.profiles.Get(ctx, id)
}

func (s *profileService) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx, id)
}

func (s *profileService) UpdateSelf(ctx context.Context, p *domain.UserProfile) error {
	stored, err := s.profiles.Get(ctx, p.ID)
	if err != nil {
		return err
	}

	// Privileged fields cannot be self-edited.
	p.Role = stored.Role
	p.IsApproved = stored.IsApproved
	p.SubscriptionStatus = stored.SubscriptionStatus
	p.TrialEndsAt = stored.TrialEndsAt
	p.CreatedAt = stored.CreatedAt

	return s.profiles.Update(ctx, p)
}
