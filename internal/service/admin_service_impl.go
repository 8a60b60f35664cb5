package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

type adminService struct {
	profiles repository.ProfileRepo
	observer UseCaseObserver
}

func NewAdminService(profiles repository.ProfileRepo, observers ...UseCaseObserver) AdminService {
	return &adminService{profiles: profiles, observer: useCaseObserverOrNoop(observers)}
}

// requireAdmin loads the acting profile and rejects non-admins. All data
// access in this service goes through it.
func (s *adminService) requireAdmin(ctx context.Context, actingID string) error {
	acting, err := s.profiles.Get(ctx, actingID)
	if err != nil {
		return err
	}
	if !acting.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func (s *adminService) observe(ctx context.Context, name, targetID string, startedAt time.Time, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"target_id": targetID},
	})
}

func (s *adminService) ListProfiles(ctx context.Context, actingID string) ([]domain.UserProfile, error) {
	if err := s.requireAdmin(ctx, actingID); err != nil {
		return nil, err
	}
	return s.profiles.ListAll(ctx)
}

func (s *adminService) SetApproval(ctx context.Context, actingID, targetID string, approved bool) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "admin-set-approval", targetID, startedAt, err) }()

	if err = s.requireAdmin(ctx, actingID); err != nil {
		return err
	}
	target, err := s.profiles.Get(ctx, targetID)
	if err != nil {
		return err
	}
	target.IsApproved = approved
	return s.profiles.Update(ctx, target)
}

func (s *adminService) SetSubscription(ctx context.Context, actingID, targetID string, status domain.SubscriptionStatus) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "admin-set-subscription", targetID, startedAt, err) }()

	if err = s.requireAdmin(ctx, actingID); err != nil {
		return err
	}
	if !domain.ValidSubscriptionStatuses[string(status)] {
		return fmt.Errorf("unknown subscription status %q", status)
	}
	target, err := s.profiles.Get(ctx, targetID)
	if err != nil {
		return err
	}
	target.SubscriptionStatus = status
	return s.profiles.Update(ctx, target)
}

func (s *adminService) SetRole(ctx context.Context, actingID, targetID string, role domain.Role) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "admin-set-role", targetID, startedAt, err) }()

	if err = s.requireAdmin(ctx, actingID); err != nil {
		return err
	}
	if !domain.ValidRoles[string(role)] {
		return fmt.Errorf("unknown role %q", role)
	}
	target, err := s.profiles.Get(ctx, targetID)
	if err != nil {
		return err
	}
	target.Role = role
	return s.profiles.Update(ctx, target)
}

func (s *adminService) DeleteUser(ctx context.Context, actingID, targetID string) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "admin-delete-user", targetID, startedAt, err) }()

	if err = s.requireAdmin(ctx, actingID); err != nil {
		return err
	}
	if actingID == targetID {
		return fmt.Errorf("admins cannot delete their own account")
	}
	return s.profiles.Delete(ctx, targetID)
}
