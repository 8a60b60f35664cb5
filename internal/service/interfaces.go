package service

import (
	"context"
	"errors"

	"github.com/lvitali/cronosheet/internal/domain"
)

var (
	// ErrForbidden is returned when the acting user lacks the admin role
	// required by an operation.
	ErrForbidden = errors.New("admin role required")

	// ErrOwnership is returned when a write references a resource that
	// does not belong to the acting user.
	ErrOwnership = errors.New("resource belongs to another user")
)

type ProjectService interface {
	// Save creates or replaces a project owned by userID. New projects
	// get a generated id and a palette color when none is set.
	Save(ctx context.Context, userID string, p *domain.Project) error
	List(ctx context.Context, userID string) ([]domain.Project, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Project, error)
	// Delete removes the project and all of its time entries.
	Delete(ctx context.Context, userID, id string) error
}

type EntryService interface {
	// Save creates or replaces a time entry owned by userID. New entries
	// get a generated id, a rate snapshot from the project when none is
	// set, and automatic night shift detection once finished.
	Save(ctx context.Context, userID string, e *domain.TimeEntry) error
	// List returns the user's entries, most recent start first.
	List(ctx context.Context, userID string) ([]domain.TimeEntry, error)
	GetByID(ctx context.Context, userID, id string) (*domain.TimeEntry, error)
	Delete(ctx context.Context, userID, id string) error
	// Running returns the user's currently running entry, or nil.
	Running(ctx context.Context, userID string) (*domain.TimeEntry, error)
}

type ProfileService interface {
	// EnsureProfile returns the profile for id, creating an unapproved
	// trial profile on first sight.
	EnsureProfile(ctx context.Context, id, email string) (*domain.UserProfile, error)
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	// UpdateSelf applies a user's own edits. Role and approval are kept
	// from the stored profile regardless of the input.
	UpdateSelf(ctx context.Context, p *domain.UserProfile) error
}

type AdminService interface {
	// Every operation verifies the acting profile's admin role before
	// touching data.
	ListProfiles(ctx context.Context, actingID string) ([]domain.UserProfile, error)
	SetApproval(ctx context.Context, actingID, targetID string, approved bool) error
	SetSubscription(ctx context.Context, actingID, targetID string, status domain.SubscriptionStatus) error
	SetRole(ctx context.Context, actingID, targetID string, role domain.Role) error
	// DeleteUser removes the profile and all of the user's projects and
	// entries.
	DeleteUser(ctx context.Context, actingID, targetID string) error
}

// Workspace is a user's full data set, loaded in one shot.
type Workspace struct {
	Projects []domain.Project
	Entries  []domain.TimeEntry
}

type WorkspaceService interface {
	// LoadAll fetches the user's projects and entries concurrently and
	// returns them joined.
	LoadAll(ctx context.Context, userID string) (*Workspace, error)
}
