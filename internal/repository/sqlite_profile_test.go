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

func TestProfileRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.NewProfile("guard@example.com")
	p.IsApproved = false
	require.NoError(t, profiles.Create(ctx, p))

	got, err := profiles.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Email, got.Email)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.Equal(t, domain.SubscriptionTrial, got.SubscriptionStatus)
	assert.False(t, got.IsApproved)
	assert.WithinDuration(t, p.TrialEndsAt, got.TrialEndsAt, time.Second)
}

func TestProfileGetByEmailCaseInsensitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.SeedProfile(t, profiles, "Guard@Example.com")

	got, err := profiles.GetByEmail(ctx, "guard@example.COM")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestProfileUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.SeedProfile(t, profiles, "guard@example.com")
	p.Role = domain.RoleAdmin
	p.SubscriptionStatus = domain.SubscriptionPro
	p.IsApproved = true
	require.NoError(t, profiles.Update(ctx, p))

	got, err := profiles.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, domain.SubscriptionPro, got.SubscriptionStatus)
	assert.True(t, got.IsApproved)
}

func TestProfileListAllNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	first := testutil.NewProfile("first@example.com")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, profiles.Create(ctx, first))
	second := testutil.SeedProfile(t, profiles, "second@example.com")

	all, err := profiles.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestProfileDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)
	ctx := context.Background()

	p := testutil.SeedProfile(t, profiles, "guard@example.com")
	require.NoError(t, profiles.Delete(ctx, p.ID))

	_, err := profiles.Get(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	profiles := repository.NewSQLiteProfileRepo(database)

	_, err := profiles.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
