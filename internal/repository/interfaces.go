package repository

import (
	"context"
	"errors"

	"github.com/lvitali/cronosheet/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist or is not
// visible to the calling user.
var ErrNotFound = errors.New("not found")

// Row ownership is explicit at this boundary: every user-scoped read and
// delete takes the calling user's id and the implementations filter on it.
// Nothing relies on an external policy engine for tenant isolation.

type ProjectRepo interface {
	List(ctx context.Context, userID string) ([]domain.Project, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Project, error)
	Upsert(ctx context.Context, p *domain.Project) error
	// Delete cascades to the project's time entries at the storage layer.
	Delete(ctx context.Context, userID, id string) error
}

type EntryRepo interface {
	// List returns the user's entries sorted descending by start time.
	List(ctx context.Context, userID string) ([]domain.TimeEntry, error)
	GetByID(ctx context.Context, userID, id string) (*domain.TimeEntry, error)
	Upsert(ctx context.Context, e *domain.TimeEntry) error
	Delete(ctx context.Context, userID, id string) error
}

type ProfileRepo interface {
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	Create(ctx context.Context, p *domain.UserProfile) error
	Update(ctx context.Context, p *domain.UserProfile) error
	// ListAll is the admin-wide read path; role gating happens in the
	// service layer, not here.
	ListAll(ctx context.Context) ([]domain.UserProfile, error)
	Delete(ctx context.Context, id string) error
}
