// Package auth stands in for the managed auth provider of the hosted
// deployment: sign-up, sign-in, sign-out, session lookup and an
// auth-state-change subscription, all backed by the profile repository and a
// session file under the data directory.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong
	// passwords, deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when signing up an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNoSession is returned when no user is signed in.
	ErrNoSession = errors.New("not signed in")

	// ErrPendingApproval marks a profile awaiting admin review. The
	// session still exists; data commands are expected to block on it.
	ErrPendingApproval = errors.New("account pending admin approval")
)

// session is what gets persisted to the session file between invocations.
type session struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	SignedAt time.Time `json:"signed_at"`
}

// StateFunc receives the signed-in profile on sign-in and nil on sign-out.
type StateFunc func(p *domain.UserProfile)

// Manager implements the auth flows over a ProfileRepo.
type Manager struct {
	profiles    repository.ProfileRepo
	sessionPath string

	mu   sync.Mutex
	subs []StateFunc
}

// NewManager creates a Manager persisting its session next to the data files.
func NewManager(profiles repository.ProfileRepo, dataDir string) *Manager {
	return &Manager{
		profiles:    profiles,
		sessionPath: filepath.Join(dataDir, "session.json"),
	}
}

// SignUp registers a new profile with a fresh trial. Whether the account
// starts approved is the store's call: the SQLite path defaults to pending
// admin review, the demo store auto-approves.
func (m *Manager) SignUp(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}

	if _, err := m.profiles.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.UserProfile{
		ID:                 uuid.New().String(),
		Email:              email,
		Role:               domain.RoleUser,
		SubscriptionStatus: domain.SubscriptionTrial,
		TrialEndsAt:        now.AddDate(0, 0, domain.TrialDays),
		IsApproved:         false,
		PasswordHash:       hash,
		CreatedAt:          now,
	}
	if err := m.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return p, nil
}

// SignIn verifies credentials, persists the session and notifies
// subscribers. An unapproved profile still signs in; callers decide what it
// may do.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	p, err := m.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(password, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	s := session{UserID: p.ID, Email: p.Email, SignedAt: time.Now().UTC()}
	if err := m.writeSession(s); err != nil {
		return nil, err
	}
	m.notify(p)
	return p, nil
}

// SignOut drops the session and notifies subscribers with nil.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := os.Remove(m.sessionPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	m.notify(nil)
	return nil
}

// Current resolves the persisted session to a fresh profile read, so role
// and approval changes made elsewhere are picked up on the next command.
func (m *Manager) Current(ctx context.Context) (*domain.UserProfile, error) {
	data, err := os.ReadFile(m.sessionPath)
	if os.IsNotExist(err) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt session file is treated as signed out.
		_ = os.Remove(m.sessionPath)
		return nil, ErrNoSession
	}

	p, err := m.profiles.Get(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = os.Remove(m.sessionPath)
			return nil, ErrNoSession
		}
		return nil, err
	}
	return p, nil
}

// Subscribe registers a callback for auth state changes. This is the only
// realtime surface; data entities are refetched, never pushed.
func (m *Manager) Subscribe(fn StateFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify(p *domain.UserProfile) {
	m.mu.Lock()
	subs := make([]StateFunc, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}

func (m *Manager) writeSession(s session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.sessionPath), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(m.sessionPath, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
