package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

// EntryStore implements repository.EntryRepo over the entries.json
// collection.
type EntryStore struct {
	s *Store
}

var _ repository.EntryRepo = (*EntryStore)(nil)

func (r *EntryStore) List(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	var mine []domain.TimeEntry
	for _, e := range all {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].StartTime > mine[j].StartTime
	})
	return mine, nil
}

func (r *EntryStore) GetByID(ctx context.Context, userID, id string) (*domain.TimeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id && all[i].UserID == userID {
			e := all[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("time entry %s: %w", id, repository.ErrNotFound)
}

func (r *EntryStore) Upsert(ctx context.Context, e *domain.TimeEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ID == e.ID && all[i].UserID == e.UserID {
			all[i] = *e
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, *e)
	}
	return writeCollection(r.s.path(entriesFile), all)
}

func (r *EntryStore) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.ID == id && e.UserID == userID {
			continue
		}
		kept = append(kept, e)
	}
	return writeCollection(r.s.path(entriesFile), kept)
}

// deleteByProject sweeps a deleted project's entries. Callers already hold
// the store lock.
func (r *EntryStore) deleteByProject(userID, projectID string) error {
	all, err := r.loadAll()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.ProjectID == projectID && e.UserID == userID {
			continue
		}
		kept = append(kept, e)
	}
	return writeCollection(r.s.path(entriesFile), kept)
}

func (r *EntryStore) loadAll() ([]domain.TimeEntry, error) {
	var all []domain.TimeEntry
	if err := readCollection(r.s.path(entriesFile), &all); err != nil {
		return nil, err
	}
	return all, nil
}
