package auth

import (
	"context"
	"testing"

	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
	"github.com/lvitali/cronosheet/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, repository.ProfileRepo) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewStore(dir)
	require.NoError(t, err)
	profiles := store.Profiles()
	return NewManager(profiles, dir), profiles
}

func TestSignUpAndSignIn(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	p, err := m.SignUp(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, p.Role)
	assert.Equal(t, domain.SubscriptionTrial, p.SubscriptionStatus)
	assert.NotEmpty(t, p.PasswordHash)
	assert.NotEqual(t, "superseguro1", p.PasswordHash)

	got, err := m.SignIn(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, current.ID)
}

func TestSignInWrongPassword(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.SignUp(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)

	_, err = m.SignIn(ctx, "guard@example.com", "wrongwrongwrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.SignIn(ctx, "nobody@example.com", "superseguro1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.SignUp(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)

	_, err = m.SignUp(ctx, "Guard@Example.com", "otherpassword")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.SignUp(context.Background(), "guard@example.com", "short")
	assert.Error(t, err)
}

func TestSignOutClearsSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.SignUp(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)
	_, err = m.SignIn(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)

	require.NoError(t, m.SignOut(ctx))
	_, err = m.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// Signing out twice is fine.
	require.NoError(t, m.SignOut(ctx))
}

func TestAuthStateSubscription(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	var events []*domain.UserProfile
	m.Subscribe(func(p *domain.UserProfile) {
		events = append(events, p)
	})

	_, err := m.SignUp(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)
	_, err = m.SignIn(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)
	require.NoError(t, m.SignOut(ctx))

	require.Len(t, events, 2)
	assert.NotNil(t, events[0])
	assert.Nil(t, events[1])
}

func TestCurrentReflectsProfileChanges(t *testing.T) {
	m, profiles := newTestManager(t)
	ctx := context.Background()

	p, err := m.SignUp(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)
	_, err = m.SignIn(ctx, "guard@example.com", "superseguro1")
	require.NoError(t, err)

	p.Role = domain.RoleAdmin
	require.NoError(t, profiles.Update(ctx, p))

	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.True(t, current.IsAdmin(), "session resolves to a fresh profile read")
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("correct horse battery", "garbage"))
	assert.False(t, VerifyPassword("correct horse battery", ""))
}
