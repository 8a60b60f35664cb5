package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lvitali/cronosheet/internal/db"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

type entryService struct {
	entries  repository.EntryRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork // nil on the demo store, which serializes writes itself
	observer UseCaseObserver
}

func NewEntryService(entries repository.EntryRepo, projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EntryService {
	return &entryService{
		entries:  entries,
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *entryService) Save(ctx context.Context, userID string, e *domain.TimeEntry) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "entry-save",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"entry_id": e.ID, "project_id": e.ProjectID},
		})
	}()

	if s.uow == nil {
		return s.save(ctx, s.entries, s.projects, userID, e)
	}
	// The ownership read, rate snapshot and write commit together so a
	// concurrent project delete cannot leave an orphaned entry.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.save(ctx, repository.NewSQLiteEntryRepo(tx), repository.NewSQLiteProjectRepo(tx), userID, e)
	})
}

func (s *entryService) save(ctx context.Context, entries repository.EntryRepo, projects repository.ProjectRepo, userID string, e *domain.TimeEntry) error {
	// The project must exist and belong to the caller.
	project, err := projects.GetByID(ctx, userID, e.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("project %s: %w", e.ProjectID, repository.ErrNotFound)
		}
		return err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.UserID = userID

	// Snapshot the project's rate at save time. Later edits to the
	// project default never change this entry's earnings.
	if e.HourlyRate == nil {
		rate := project.DefaultHourlyRate
		e.HourlyRate = &rate
	}

	if e.EndTime != nil {
		if *e.EndTime < e.StartTime {
			return fmt.Errorf("entry ends before it starts")
		}
		if e.Duration == 0 {
			e.Duration = e.ComputedDuration(time.Now())
		}
		e.IsNightShift = domain.DetectNightShift(e.StartAt(), e.EndAt())
	}

	return entries.Upsert(ctx, e)
}

func (s *entryService) List(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	return s.entries.List(ctx, userID)
}

func (s *entryService) GetByID(ctx context.Context, userID, id string) (*domain.TimeEntry, error) {
	return s.entries.GetByID(ctx, userID, id)
}

func (s *entryService) Delete(ctx context.Context, userID, id string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "entry-delete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"entry_id": id},
		})
	}()

	err = s.entries.Delete(ctx, userID, id)
	return err
}

func (s *entryService) Running(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	entries, err := s.entries.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Running() {
			return &entries[i], nil
		}
	}
	return nil, nil
}
