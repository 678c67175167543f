package infra

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	dsn := os.Getenv("TAXI_TEST_DSN")
	if dsn == "" {
		t.Skip("TAXI_TEST_DSN not set; skipping Postgres-backed tests")
	}

	require.NoError(t, RunMigrations(dsn))
	require.NoError(t, RunMigrations(dsn), "second run must be a no-op")

	db, err := NewDB(context.Background(), dsn)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "bookings", "drivers"} {
		var name *string
		require.NoError(t, db.Get(&name, "SELECT to_regclass($1)::text", "public."+table))
		if assert.NotNil(t, name, table) {
			assert.Equal(t, table, *name)
		}
	}
}
