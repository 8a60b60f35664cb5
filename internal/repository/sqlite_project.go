package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lvitali/cronosheet/internal/db"
	"github.com/lvitali/cronosheet/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
// Struct fields translate to snake_case columns on every read and write
// (DefaultHourlyRate <-> default_hourly_rate); shift presets travel as a
// JSON column the way the hosted schema stored them.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) List(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `SELECT id, user_id, name, color, default_hourly_rate, shifts
		FROM projects WHERE user_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, userID, id string) (*domain.Project, error) {
	query := `SELECT id, user_id, name, color, default_hourly_rate, shifts
		FROM projects WHERE user_id = ? AND id = ?`
	rows, err := r.db.QueryContext(ctx, query, userID, id)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("loading project: %w", err)
		}
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return scanProject(rows)
}

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) error {
	shifts, err := marshalJSONColumn(p.Shifts)
	if err != nil {
		return fmt.Errorf("encoding shifts: %w", err)
	}

	query := `INSERT INTO projects (id, user_id, name, color, default_hourly_rate, shifts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			default_hourly_rate = excluded.default_hourly_rate,
			shifts = excluded.shifts
		WHERE projects.user_id = excluded.user_id`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Name,
		p.Color,
		p.DefaultHourlyRate,
		shifts,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, userID, id string) error {
	// Foreign keys cascade the delete to the project's time entries.
	query := `DELETE FROM projects WHERE user_id = ? AND id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var shiftsJSON string

	err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.DefaultHourlyRate, &shiftsJSON)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	if err := unmarshalJSONColumn(shiftsJSON, &p.Shifts); err != nil {
		return nil, fmt.Errorf("decoding shifts: %w", err)
	}
	return &p, nil
}
