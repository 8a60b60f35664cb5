package intelligence

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lvitali/cronosheet/internal/domain"
)

// ErrNoProjects indicates a suggestion was requested with no projects to
// choose from.
var ErrNoProjects = errors.New("no projects to suggest from")

// deterministicWeek builds insights directly from the digest without the
// model. Used whenever Ollama is unavailable or returns unusable output.
func deterministicWeek(digest weekDigest) *WeekInsights {
	out := &WeekInsights{
		TotalHours: digest.TotalHours,
		EntryCount: digest.EntryCount,
		Source:     SourceDeterministic,
	}

	if digest.EntryCount == 0 {
		out.Summary = "No work tracked in the last seven days."
		return out
	}

	top := digest.Projects[0]
	for _, p := range digest.Projects[1:] {
		if p.Hours > top.Hours {
			top = p
		}
	}
	out.TopProject = top.Name

	out.Summary = fmt.Sprintf("Tracked %.1f hours across %d entries in the last seven days. Most time went to %s (%.1f hours).",
		digest.TotalHours, digest.EntryCount, top.Name, top.Hours)
	if top.NightCount > 0 {
		out.Summary += fmt.Sprintf(" %d night shift(s) logged.", top.NightCount)
	}
	return out
}

// deterministicSuggest matches description words against project names,
// falling back to the first project when nothing matches.
func deterministicSuggest(description string, projects []domain.Project) *ProjectSuggestion {
	desc := strings.ToLower(description)

	type scored struct {
		project domain.Project
		hits    int
	}
	var best scored
	for _, p := range projects {
		hits := 0
		for _, word := range strings.Fields(strings.ToLower(p.Name)) {
			if len(word) >= 3 && strings.Contains(desc, word) {
				hits++
			}
		}
		if hits > best.hits {
			best = scored{project: p, hits: hits}
		}
	}

	if best.hits == 0 {
		best.project = projects[0]
	}
	return &ProjectSuggestion{
		ProjectID:   best.project.ID,
		ProjectName: best.project.Name,
		Source:      SourceDeterministic,
	}
}

// cleanSummary strips quotes and surrounding whitespace from model output.
func cleanSummary(text string) string {
	s := strings.TrimSpace(text)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// sortProjectsByHours orders a digest's projects most-worked first.
func sortProjectsByHours(projects []weekProjectDigest) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Hours > projects[j].Hours
	})
}
