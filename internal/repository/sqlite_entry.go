package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lvitali/cronosheet/internal/db"
	"github.com/lvitali/cronosheet/internal/domain"
)

// SQLiteEntryRepo implements EntryRepo using a SQLite database. Timestamps
// are stored as epoch milliseconds matching the in-memory shape; the stored
// duration column is authoritative and never recomputed server-side.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

const entryColumns = `id, user_id, project_id, description, start_time, end_time,
	duration, hourly_rate, expenses, is_night_shift`

func (r *SQLiteEntryRepo) List(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM time_entries WHERE user_id = ? ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, userID, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM time_entries WHERE user_id = ? AND id = ?`
	rows, err := r.db.QueryContext(ctx, query, userID, id)
	if err != nil {
		return nil, fmt.Errorf("loading entry: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("loading entry: %w", err)
		}
		return nil, fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	return scanEntry(rows)
}

func (r *SQLiteEntryRepo) Upsert(ctx context.Context, e *domain.TimeEntry) error {
	expenses, err := marshalJSONColumn(e.Expenses)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	query := `INSERT INTO time_entries (id, user_id, project_id, description, start_time,
			end_time, duration, hourly_rate, expenses, is_night_shift, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			description = excluded.description,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			duration = excluded.duration,
			hourly_rate = excluded.hourly_rate,
			expenses = excluded.expenses,
			is_night_shift = excluded.is_night_shift
		WHERE time_entries.user_id = excluded.user_id`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.ProjectID,
		e.Description,
		e.StartTime,
		nullableInt64(e.EndTime),
		e.Duration,
		nullableFloat(e.HourlyRate),
		expenses,
		boolToInt(e.IsNightShift),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM time_entries WHERE user_id = ? AND id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

func scanEntry(rows *sql.Rows) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var endTime sql.NullInt64
	var hourlyRate sql.NullFloat64
	var expensesJSON string
	var night int

	err := rows.Scan(
		&e.ID, &e.UserID, &e.ProjectID, &e.Description,
		&e.StartTime, &endTime,
		&e.Duration, &hourlyRate,
		&expensesJSON, &night,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning entry row: %w", err)
	}

	if endTime.Valid {
		v := endTime.Int64
		e.EndTime = &v
	}
	if hourlyRate.Valid {
		v := hourlyRate.Float64
		e.HourlyRate = &v
	}
	e.IsNightShift = intToBool(night)

	if err := unmarshalJSONColumn(expensesJSON, &e.Expenses); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}
	return &e, nil
}
