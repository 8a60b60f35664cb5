package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/llm"
)

// WeekInsights summarizes the last seven days of tracked work.
type WeekInsights struct {
	Summary    string  `json:"summary"`
	TotalHours float64 `json:"totalHours"`
	TopProject string  `json:"topProject"`
	EntryCount int     `json:"entryCount"`

	// Source records whether the summary came from the model or the
	// deterministic fallback.
	Source string `json:"source"`
}

// ProjectSuggestion is a guess at which project a free-text entry
// description belongs to.
type ProjectSuggestion struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Source      string `json:"source"`
}

const (
	SourceModel         = "model"
	SourceDeterministic = "deterministic"
)

// InsightsService generates narrative insights over time entries.
type InsightsService interface {
	// AnalyzeWeek summarizes the entries of the seven days ending at now.
	AnalyzeWeek(ctx context.Context, entries []domain.TimeEntry, projects []domain.Project, now time.Time) (*WeekInsights, error)

	// SuggestProject matches a free-text description to one of the
	// user's projects.
	SuggestProject(ctx context.Context, description string, projects []domain.Project) (*ProjectSuggestion, error)
}

type insightsService struct {
	client llm.Client
}

// NewInsightsService creates an InsightsService backed by a model client.
// A nil client always uses the deterministic fallbacks.
func NewInsightsService(client llm.Client) InsightsService {
	return &insightsService{client: client}
}

// weekDigest is the structured view of the week handed to the model.
type weekDigest struct {
	TotalHours float64             `json:"totalHours"`
	EntryCount int                 `json:"entryCount"`
	Projects   []weekProjectDigest `json:"projects"`
}

type weekProjectDigest struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	NightCount int     `json:"nightShifts"`
}

func (s *insightsService) AnalyzeWeek(ctx context.Context, entries []domain.TimeEntry, projects []domain.Project, now time.Time) (*WeekInsights, error) {
	week := lastWeek(entries, now)
	digest := buildDigest(week, projects)

	if s.client == nil {
		return deterministicWeek(digest), nil
	}

	digestJSON, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return deterministicWeek(digest), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskInsights,
		SystemPrompt: insightsSystemPrompt,
		UserPrompt:   "Here is the week of tracked work:\n\n" + string(digestJSON),
	})
	if err != nil {
		return deterministicWeek(digest), nil
	}

	summary := cleanSummary(resp.Text)
	if summary == "" {
		return deterministicWeek(digest), nil
	}

	out := deterministicWeek(digest)
	out.Summary = summary
	out.Source = SourceModel
	return out, nil
}

func (s *insightsService) SuggestProject(ctx context.Context, description string, projects []domain.Project) (*ProjectSuggestion, error) {
	if len(projects) == 0 {
		return nil, ErrNoProjects
	}

	if s.client != nil {
		if sg := s.suggestViaModel(ctx, description, projects); sg != nil {
			return sg, nil
		}
	}
	return deterministicSuggest(description, projects), nil
}

func (s *insightsService) suggestViaModel(ctx context.Context, description string, projects []domain.Project) *ProjectSuggestion {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}

	prompt := struct {
		Description string   `json:"description"`
		Projects    []string `json:"projects"`
	}{Description: description, Projects: names}

	promptJSON, err := json.Marshal(prompt)
	if err != nil {
		return nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCategorize,
		SystemPrompt: categorizeSystemPrompt,
		UserPrompt:   string(promptJSON),
	})
	if err != nil {
		return nil
	}

	// The model must answer with one of the given names, verbatim.
	answer := cleanSummary(resp.Text)
	for _, p := range projects {
		if equalFold(answer, p.Name) {
			return &ProjectSuggestion{ProjectID: p.ID, ProjectName: p.Name, Source: SourceModel}
		}
	}
	return nil
}

// lastWeek keeps entries whose start falls within the seven days ending
// at now. Running entries inside the window count too.
func lastWeek(entries []domain.TimeEntry, now time.Time) []domain.TimeEntry {
	cutoff := now.AddDate(0, 0, -7)
	var out []domain.TimeEntry
	for _, e := range entries {
		start := e.StartAt()
		if !start.Before(cutoff) && !start.After(now) {
			out = append(out, e)
		}
	}
	return out
}

func buildDigest(entries []domain.TimeEntry, projects []domain.Project) weekDigest {
	nameByID := make(map[string]string, len(projects))
	for _, p := range projects {
		nameByID[p.ID] = p.Name
	}

	hours := make(map[string]float64)
	nights := make(map[string]int)
	var digest weekDigest
	for _, e := range entries {
		name := nameByID[e.ProjectID]
		if name == "" {
			name = "(unknown)"
		}
		h := e.Duration / 3600
		hours[name] += h
		if e.IsNightShift {
			nights[name]++
		}
		digest.TotalHours += h
		digest.EntryCount++
	}

	for _, p := range projects {
		if h, ok := hours[p.Name]; ok {
			digest.Projects = append(digest.Projects, weekProjectDigest{
				Name:       p.Name,
				Hours:      h,
				NightCount: nights[p.Name],
			})
		}
	}
	if h, ok := hours["(unknown)"]; ok {
		digest.Projects = append(digest.Projects, weekProjectDigest{Name: "(unknown)", Hours: h})
	}
	sortProjectsByHours(digest.Projects)
	return digest
}
