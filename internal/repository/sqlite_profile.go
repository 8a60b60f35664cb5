package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lvitali/cronosheet/internal/db"
	"github.com/lvitali/cronosheet/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

const profileColumns = `id, email, role, subscription_status, trial_ends_at,
	is_approved, password_hash, created_at`

func (r *SQLiteProfileRepo) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLiteProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER(?)`
	return r.getOne(ctx, query, email)
}

func (r *SQLiteProfileRepo) getOne(ctx context.Context, query string, arg any) (*domain.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	return scanProfile(rows)
}

func (r *SQLiteProfileRepo) Create(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT INTO profiles (id, email, role, subscription_status, trial_ends_at,
			is_approved, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Email,
		string(p.Role),
		string(p.SubscriptionStatus),
		p.TrialEndsAt.UTC().Format(time.RFC3339),
		boolToInt(p.IsApproved),
		p.PasswordHash,
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	query := `UPDATE profiles SET email = ?, role = ?, subscription_status = ?,
			trial_ends_at = ?, is_approved = ?, password_hash = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Email,
		string(p.Role),
		string(p.SubscriptionStatus),
		p.TrialEndsAt.UTC().Format(time.RFC3339),
		boolToInt(p.IsApproved),
		p.PasswordHash,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, id string) error {
	// Cascades to the user's projects and entries via foreign keys.
	query := `DELETE FROM profiles WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

func scanProfile(rows *sql.Rows) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var roleStr, statusStr, trialStr, createdStr string
	var approved int

	err := rows.Scan(
		&p.ID, &p.Email, &roleStr, &statusStr, &trialStr,
		&approved, &p.PasswordHash, &createdStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning profile row: %w", err)
	}

	p.Role = domain.Role(roleStr)
	p.SubscriptionStatus = domain.SubscriptionStatus(statusStr)
	p.IsApproved = intToBool(approved)

	var parseErr error
	p.TrialEndsAt, parseErr = time.Parse(time.RFC3339, trialStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing trial_ends_at: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &p, nil
}
