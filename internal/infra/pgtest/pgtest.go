// README: Test helper for Postgres-backed tests; skips unless TAXI_TEST_DSN is set.
package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"taxi/internal/infra"
)

const (
	dsnEnv = "TAXI_TEST_DSN"
	// lockKey serialises test packages that share one database.
	lockKey = 7310001
)

// DSN returns the test database DSN or skips the test.
func DSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skip(dsnEnv + " not set; skipping Postgres-backed tests")
	}
	return dsn
}

// Open connects to the test database, migrates it and empties every table.
// The database stays locked to this test until cleanup.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := DSN(t)
	ctx := context.Background()

	db, err := infra.NewDB(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	conn, err := db.Connx(ctx)
	if err != nil {
		t.Fatalf("lock conn: %v", err)
	}
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		t.Fatalf("advisory lock: %v", err)
	}
	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		_ = conn.Close()
	})

	if err := infra.RunMigrations(dsn); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := db.ExecContext(ctx, "TRUNCATE TABLE bookings, drivers, users RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return db
}
