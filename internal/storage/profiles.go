package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

// ProfileStore implements repository.ProfileRepo over the users.json
// collection.
type ProfileStore struct {
	s *Store
}

var _ repository.ProfileRepo = (*ProfileStore)(nil)

func (r *ProfileStore) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			p := all[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
}

func (r *ProfileStore) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			p := all[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
}

// Create is idempotent: a profile already present under the same id is left
// untouched. Demo mode is single-tenant and frictionless, so new profiles
// are approved on the spot instead of waiting on admin review.
func (r *ProfileStore) Create(ctx context.Context, p *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == p.ID {
			*p = all[i]
			return nil
		}
	}

	p.IsApproved = true
	all = append(all, *p)
	return writeCollection(r.s.path(usersFile), all)
}

func (r *ProfileStore) Update(ctx context.Context, p *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == p.ID {
			all[i] = *p
			return writeCollection(r.s.path(usersFile), all)
		}
	}
	return fmt.Errorf("profile: %w", repository.ErrNotFound)
}

func (r *ProfileStore) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (r *ProfileStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, p := range all {
		if p.ID == id {
			continue
		}
		kept = append(kept, p)
	}
	if err := writeCollection(r.s.path(usersFile), kept); err != nil {
		return err
	}

	// Sweep the user's data as well, mirroring the schema-side cascade.
	var projects []domain.Project
	if err := readCollection(r.s.path(projectsFile), &projects); err != nil {
		return err
	}
	keptProjects := projects[:0]
	for _, p := range projects {
		if p.UserID == id {
			continue
		}
		keptProjects = append(keptProjects, p)
	}
	if err := writeCollection(r.s.path(projectsFile), keptProjects); err != nil {
		return err
	}

	var entries []domain.TimeEntry
	if err := readCollection(r.s.path(entriesFile), &entries); err != nil {
		return err
	}
	keptEntries := entries[:0]
	for _, e := range entries {
		if e.UserID == id {
			continue
		}
		keptEntries = append(keptEntries, e)
	}
	return writeCollection(r.s.path(entriesFile), keptEntries)
}

func (r *ProfileStore) loadAll() ([]domain.UserProfile, error) {
	var all []domain.UserProfile
	if err := readCollection(r.s.path(usersFile), &all); err != nil {
		return nil, err
	}
	return all, nil
}
