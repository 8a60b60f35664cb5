package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

// ProjectStore implements repository.ProjectRepo over the projects.json
// collection.
type ProjectStore struct {
	s *Store
}

var _ repository.ProjectRepo = (*ProjectStore)(nil)

// demoProjects are the presets seeded the first time a user lists projects,
// so demo mode has something to log against out of the box.
func demoProjects(userID string) []domain.Project {
	return []domain.Project{
		{
			ID:                uuid.New().String(),
			UserID:            userID,
			Name:              "Reception Ingresso",
			Color:             domain.PaletteColor(0),
			DefaultHourlyRate: 10,
			Shifts: []domain.Shift{
				{ID: uuid.New().String(), Name: "Mattina", StartTime: "07:00", EndTime: "15:00"},
				{ID: uuid.New().String(), Name: "Pomeriggio", StartTime: "15:00", EndTime: "23:00"},
			},
		},
		{
			ID:                uuid.New().String(),
			UserID:            userID,
			Name:              "Pattuglia Esterna",
			Color:             domain.PaletteColor(4),
			DefaultHourlyRate: 12.5,
			Shifts: []domain.Shift{
				{ID: uuid.New().String(), Name: "Notte", StartTime: "22:00", EndTime: "06:00"},
			},
		},
	}
}

func (r *ProjectStore) List(ctx context.Context, userID string) ([]domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	var mine []domain.Project
	for _, p := range all {
		if p.UserID == userID {
			mine = append(mine, p)
		}
	}
	if len(mine) > 0 {
		return mine, nil
	}

	// First visit: seed the demo presets so they can be edited and
	// deleted like real rows.
	seeded := demoProjects(userID)
	all = append(all, seeded...)
	if err := writeCollection(r.s.path(projectsFile), all); err != nil {
		return nil, err
	}
	return seeded, nil
}

func (r *ProjectStore) GetByID(ctx context.Context, userID, id string) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id && all[i].UserID == userID {
			p := all[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
}

func (r *ProjectStore) Upsert(ctx context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ID == p.ID && all[i].UserID == p.UserID {
			all[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, *p)
	}
	return writeCollection(r.s.path(projectsFile), all)
}

func (r *ProjectStore) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, p := range all {
		if p.ID == id && p.UserID == userID {
			continue
		}
		kept = append(kept, p)
	}
	if err := writeCollection(r.s.path(projectsFile), kept); err != nil {
		return err
	}

	// No schema here, so the project -> entries cascade is swept by hand.
	return r.s.Entries().deleteByProject(userID, id)
}

func (r *ProjectStore) loadAll() ([]domain.Project, error) {
	var all []domain.Project
	if err := readCollection(r.s.path(projectsFile), &all); err != nil {
		return nil, err
	}
	return all, nil
}
