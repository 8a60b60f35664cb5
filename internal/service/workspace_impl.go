package service

import (
	"context"
	"sync"
	"time"

	"github.com/lvitali/cronosheet/internal/repository"
)

type workspaceService struct {
	projects repository.ProjectRepo
	entries  repository.EntryRepo
	observer UseCaseObserver
}

func NewWorkspaceService(projects repository.ProjectRepo, entries repository.EntryRepo, observers ...UseCaseObserver) WorkspaceService {
	return &workspaceService{
		projects: projects,
		entries:  entries,
		observer: useCaseObserverOrNoop(observers),
	}
}

// LoadAll fetches projects and entries in parallel. Either failure fails
// the whole load; callers never see a half-populated workspace.
func (s *workspaceService) LoadAll(ctx context.Context, userID string) (ws *Workspace, err error) {
	startedAt := time.Now()
	defer func() {
		fields := map[string]any{}
		if ws != nil {
			fields["projects"] = len(ws.Projects)
			fields["entries"] = len(ws.Entries)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "workspace-load",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var (
		wg         sync.WaitGroup
		out        Workspace
		projectErr error
		entryErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Projects, projectErr = s.projects.List(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		out.Entries, entryErr = s.entries.List(ctx, userID)
	}()
	wg.Wait()

	if projectErr != nil {
		return nil, projectErr
	}
	if entryErr != nil {
		return nil, entryErr
	}
	return &out, nil
}
