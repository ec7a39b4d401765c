package testdb

import (
	"database/sql"
	"testing"

	"github.com/phrazzld/dbfixture/internal/fixture"
)

// WithTx runs fn inside a fixture transaction on db and rolls it back when fn
// returns, including when it panics or calls t.FailNow.
func WithTx(t *testing.T, db *sql.DB, dialect fixture.Dialect, fn func(t *testing.T, fx *fixture.Fixture)) {
	t.Helper()

	fx := fixture.New(fixture.Options{
		Conn:                db,
		Dialect:             dialect,
		ValidateIdentifiers: true,
	})

	if err := fx.Setup(t); err != nil {
		t.Fatalf("Failed to begin test transaction: %v", err)
	}
	defer func() {
		if err := fx.Teardown(t); err != nil {
			t.Errorf("Failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, fx)
}
