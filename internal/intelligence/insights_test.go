package intelligence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/llm"
	"github.com/lvitali/cronosheet/internal/testutil"
)

// fakeClient returns canned responses, or errors when failing is set.
type fakeClient struct {
	response string
	failing  bool
	calls    int
}

func (f *fakeClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.calls++
	if f.failing {
		return nil, llm.ErrUnavailable
	}
	return &llm.GenerateResponse{Text: f.response, Model: "fake"}, nil
}

func (f *fakeClient) Available(ctx context.Context) bool { return !f.failing }

func weekFixture(now time.Time) ([]domain.TimeEntry, []domain.Project) {
	reception := testutil.NewProject("u1", "Reception Ingresso", 10)
	patrol := testutil.NewProject("u1", "Pattuglia Esterna", 12.5)

	inWindow := testutil.NewEntry("u1", reception.ID, now.AddDate(0, 0, -2), 2*3600, 10)
	alsoIn := testutil.NewEntry("u1", patrol.ID, now.AddDate(0, 0, -1), 3600, 12.5)
	alsoIn.IsNightShift = true
	outside := testutil.NewEntry("u1", reception.ID, now.AddDate(0, 0, -10), 4*3600, 10)

	entries := []domain.TimeEntry{*inWindow, *alsoIn, *outside}
	projects := []domain.Project{*reception, *patrol}
	return entries, projects
}

func TestAnalyzeWeekDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	entries, projects := weekFixture(now)

	svc := NewInsightsService(nil)
	got, err := svc.AnalyzeWeek(context.Background(), entries, projects, now)
	require.NoError(t, err)

	assert.Equal(t, SourceDeterministic, got.Source)
	assert.InDelta(t, 3.0, got.TotalHours, 0.001)
	assert.Equal(t, 2, got.EntryCount)
	assert.Equal(t, "Reception Ingresso", got.TopProject)
	assert.Contains(t, got.Summary, "3.0 hours")
}

func TestAnalyzeWeekEmpty(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	svc := NewInsightsService(nil)
	got, err := svc.AnalyzeWeek(context.Background(), nil, nil, now)
	require.NoError(t, err)

	assert.Equal(t, 0, got.EntryCount)
	assert.Contains(t, got.Summary, "No work tracked")
}

func TestAnalyzeWeekUsesModelText(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	entries, projects := weekFixture(now)

	client := &fakeClient{response: "A solid week of reception work."}
	svc := NewInsightsService(client)

	got, err := svc.AnalyzeWeek(context.Background(), entries, projects, now)
	require.NoError(t, err)

	assert.Equal(t, SourceModel, got.Source)
	assert.Equal(t, "A solid week of reception work.", got.Summary)
	assert.InDelta(t, 3.0, got.TotalHours, 0.001)
	assert.Equal(t, 1, client.calls)
}

func TestAnalyzeWeekFallsBackWhenModelFails(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	entries, projects := weekFixture(now)

	svc := NewInsightsService(&fakeClient{failing: true})
	got, err := svc.AnalyzeWeek(context.Background(), entries, projects, now)
	require.NoError(t, err)

	assert.Equal(t, SourceDeterministic, got.Source)
	assert.NotEmpty(t, got.Summary)
}

func TestSuggestProjectViaModel(t *testing.T) {
	_, projects := weekFixture(time.Now())

	client := &fakeClient{response: "Pattuglia Esterna\n"}
	svc := NewInsightsService(client)

	got, err := svc.SuggestProject(context.Background(), "giro di controllo notturno", projects)
	require.NoError(t, err)

	assert.Equal(t, SourceModel, got.Source)
	assert.Equal(t, "Pattuglia Esterna", got.ProjectName)
	assert.Equal(t, projects[1].ID, got.ProjectID)
}

func TestSuggestProjectRejectsUnknownModelAnswer(t *testing.T) {
	_, projects := weekFixture(time.Now())

	// Model answers with a name not in the list; the keyword fallback
	// should pick the match instead.
	client := &fakeClient{response: "Sorveglianza Generica"}
	svc := NewInsightsService(client)

	got, err := svc.SuggestProject(context.Background(), "turno in reception", projects)
	require.NoError(t, err)

	assert.Equal(t, SourceDeterministic, got.Source)
	assert.Equal(t, "Reception Ingresso", got.ProjectName)
}

func TestSuggestProjectDeterministicFallsBackToFirst(t *testing.T) {
	_, projects := weekFixture(time.Now())

	svc := NewInsightsService(nil)
	got, err := svc.SuggestProject(context.Background(), "qualcosa di diverso", projects)
	require.NoError(t, err)

	assert.Equal(t, projects[0].Name, got.ProjectName)
}

func TestSuggestProjectNoProjects(t *testing.T) {
	svc := NewInsightsService(nil)
	_, err := svc.SuggestProject(context.Background(), "anything", nil)
	assert.True(t, errors.Is(err, ErrNoProjects))
}
