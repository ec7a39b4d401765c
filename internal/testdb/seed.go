package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/dbfixture/internal/store"
)

// Seed runs fn in a committed transaction. The rows it writes are visible to
// every later test, so it belongs in TestMain or a suite's SetupSuite.
func Seed(ctx context.Context, db *sql.DB, fn store.TxFn) error {
	return store.RunInTransaction(ctx, db, fn)
}

// SeedWithT is Seed that fails the test on error.
func SeedWithT(t *testing.T, db *sql.DB, fn store.TxFn) {
	t.Helper()

	if err := Seed(context.Background(), db, fn); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
}
