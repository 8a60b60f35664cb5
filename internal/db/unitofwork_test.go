package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvitali/cronosheet/internal/db"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertProfile(ctx context.Context, tx db.DBTX, id, email string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (id, email, trial_ends_at, created_at) VALUES (?, ?, ?, ?)`,
		id, email, now, now)
	return err
}

func profileExists(uow *db.SQLiteUnitOfWork, id string) bool {
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT 1 FROM profiles WHERE id = ?`, id)
		var one int
		if err := row.Scan(&one); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertProfile(ctx, tx, "u1", "guard@example.com")
	})
	require.NoError(t, err)

	assert.True(t, profileExists(uow, "u1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProfile(ctx, tx, "u2", "guard2@example.com"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.False(t, profileExists(uow, "u2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertProfile(ctx, tx, "u3", "guard3@example.com")
			panic("boom")
		})
	})

	assert.False(t, profileExists(uow, "u3"), "row should not exist after panic rollback")
}

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB already migrated once; a second run must not fail.
	require.NoError(t, db.Migrate(database))
}
