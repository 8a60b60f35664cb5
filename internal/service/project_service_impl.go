package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Save(ctx context.Context, userID string, p *domain.Project) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-save",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": p.ID},
		})
	}()

	if p.ID == "" {
		p.ID = uuid.New().String()
		if p.Color == "" {
			existing, listErr := s.projects.List(ctx, userID)
			if listErr != nil {
				return listErr
			}
			p.Color = domain.PaletteColor(len(existing))
		}
	} else {
		existing, getErr := s.projects.GetByID(ctx, userID, p.ID)
		if getErr != nil {
			return getErr
		}
		if existing.UserID != userID {
			return ErrOwnership
		}
	}
	p.UserID = userID

	if err = p.Validate(); err != nil {
		return err
	}
	return s.projects.Upsert(ctx, p)
}

func (s *projectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.projects.List(ctx, userID)
}

func (s *projectService) GetByID(ctx context.Context, userID, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, userID, id)
}

func (s *projectService) Delete(ctx context.Context, userID, id string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-delete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": id},
		})
	}()

	err = s.projects.Delete(ctx, userID, id)
	return err
}
