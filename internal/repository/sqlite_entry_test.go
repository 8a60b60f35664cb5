package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
	"github.com/lvitali/cronosheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	entries := repository.NewSQLiteEntryRepo(database)
	ctx := context.Background()

	owner := testutil.SeedProfile(t, profiles, "guard@example.com")
	p := testutil.NewProject(owner.ID, "Reception", 10)
	require.NoError(t, projects.Upsert(ctx, p))

	start := time.Date(2024, 6, 10, 7, 0, 0, 0, time.Local)
	e := testutil.NewEntry(owner.ID, p.ID, start, 8*3600, 10)
	e.Description = "turno mattina"
	e.IsNightShift = false
	e.Expenses = []domain.Expense{
		{ID: "x1", Description: "parcheggio", Amount: 5},
		{ID: "x2", Description: "pranzo", Amount: 2.5},
	}
	require.NoError(t, entries.Upsert(ctx, e))

	got, err := entries.GetByID(ctx, owner.ID, e.ID)
	require.NoError(t, err)

	assert.Equal(t, e.StartTime, got.StartTime)
	require.NotNil(t, got.EndTime)
	assert.Equal(t, *e.EndTime, *got.EndTime)
	assert.Equal(t, float64(8*3600), got.Duration)
	require.NotNil(t, got.HourlyRate)
	assert.Equal(t, 10.0, *got.HourlyRate)
	require.Len(t, got.Expenses, 2)
	assert.InDelta(t, 7.5, got.ExpenseTotal(), 1e-9)
	assert.Equal(t, "turno mattina", got.Description)
}

func TestEntryOpenEnded(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	entries := repository.NewSQLiteEntryRepo(database)
	ctx := context.Background()

	owner := testutil.SeedProfile(t, profiles, "guard@example.com")
	p := testutil.NewProject(owner.ID, "Reception", 10)
	require.NoError(t, projects.Upsert(ctx, p))

	e := &domain.TimeEntry{
		ID:        "open-1",
		UserID:    owner.ID,
		ProjectID: p.ID,
		StartTime: time.Now().UnixMilli(),
	}
	require.NoError(t, entries.Upsert(ctx, e))

	got, err := entries.GetByID(ctx, owner.ID, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.HourlyRate)
	assert.True(t, got.Running())
}

func TestEntryListDescending(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	entries := repository.NewSQLiteEntryRepo(database)
	ctx := context.Background()

	owner := testutil.SeedProfile(t, profiles, "guard@example.com")
	p := testutil.NewProject(owner.ID, "Reception", 10)
	require.NoError(t, projects.Upsert(ctx, p))

	base := time.Date(2024, 6, 10, 7, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		e := testutil.NewEntry(owner.ID, p.ID, base.AddDate(0, 0, i), 3600, 10)
		require.NoError(t, entries.Upsert(ctx, e))
	}

	got, err := entries.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].StartTime > got[1].StartTime)
	assert.True(t, got[1].StartTime > got[2].StartTime)
}

func TestProjectDeleteCascadesToEntries(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	entries := repository.NewSQLiteEntryRepo(database)
	ctx := context.Background()

	owner := testutil.SeedProfile(t, profiles, "guard@example.com")
	p := testutil.NewProject(owner.ID, "Reception", 10)
	require.NoError(t, projects.Upsert(ctx, p))

	e := testutil.NewEntry(owner.ID, p.ID, time.Now(), 3600, 10)
	require.NoError(t, entries.Upsert(ctx, e))

	require.NoError(t, projects.Delete(ctx, owner.ID, p.ID))

	got, err := entries.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "entries must vanish with their project")
}

func TestEntryUserIsolation(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	entries := repository.NewSQLiteEntryRepo(database)
	ctx := context.Background()

	alice := testutil.SeedProfile(t, profiles, "alice@example.com")
	bob := testutil.SeedProfile(t, profiles, "bob@example.com")

	p := testutil.NewProject(alice.ID, "Alice Site", 10)
	require.NoError(t, projects.Upsert(ctx, p))
	e := testutil.NewEntry(alice.ID, p.ID, time.Now(), 3600, 10)
	require.NoError(t, entries.Upsert(ctx, e))

	got, err := entries.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = entries.GetByID(ctx, bob.ID, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
