package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/ciutil"
	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
)

var (
	pgOnce sync.Once
	pgDB   *sql.DB
	pgErr  error
)

// GetTestDBWithT returns the shared, migrated PostgreSQL pool. It skips the
// test when no database is configured. The pool lives for the whole test
// binary.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	url := ciutil.GetTestDatabaseURL(nil)
	if url == "" {
		skipOrFail(t, ciutil.EnvDatabaseURL)
	}

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := postgres.Open(ctx, url, nil)
		if err != nil {
			pgErr = fmt.Errorf("connect to %s: %w", ciutil.MaskSensitiveValue(url), err)
			return
		}
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, nil); err != nil {
			_ = db.Close()
			pgErr = fmt.Errorf("apply migrations: %w", err)
			return
		}
		pgDB = db
	})
	if pgErr != nil {
		t.Fatalf("test database unavailable: %v", pgErr)
	}
	return pgDB
}

// ResetTables empties every application table.
func ResetTables(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(), "TRUNCATE tasks, users"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// WithTx runs fn inside a transaction that is rolled back afterwards, even
// when fn fails the test or panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

func skipOrFail(t *testing.T, envVar string) {
	t.Helper()
	if ciutil.IsCI() {
		t.Fatalf("%s must be set for integration tests in CI", envVar)
	}
	t.Skipf("%s not set, skipping integration test", envVar)
}
