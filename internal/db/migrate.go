package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id                  TEXT PRIMARY KEY,
		email               TEXT NOT NULL UNIQUE,
		role                TEXT NOT NULL DEFAULT 'user'
		                    CHECK(role IN ('admin','user')),
		subscription_status TEXT NOT NULL DEFAULT 'trial'
		                    CHECK(subscription_status IN ('trial','active','pro','elite','expired')),
		trial_ends_at       TEXT NOT NULL,
		is_approved         INTEGER NOT NULL DEFAULT 0,
		password_hash       TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		color               TEXT NOT NULL DEFAULT '',
		default_hourly_rate REAL NOT NULL DEFAULT 0,
		shifts              TEXT NOT NULL DEFAULT '[]',
		created_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		description    TEXT NOT NULL DEFAULT '',
		start_time     INTEGER NOT NULL,
		end_time       INTEGER,
		duration       REAL NOT NULL DEFAULT 0,
		hourly_rate    REAL,
		expenses       TEXT NOT NULL DEFAULT '[]',
		is_night_shift INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_user ON time_entries(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_project ON time_entries(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_start ON time_entries(start_time)`,
}
