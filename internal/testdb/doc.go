// Package testdb opens and prepares databases for tests that use the
// transactional fixture.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests do not see each other's writes and no cleanup is
// needed.
//
// # Basic Usage
//
//	func TestUserLookup(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t) // skips when no database is configured
//	    testdb.MigrateWithT(t, db, testdb.DriverPgx, migrations, "migrations")
//
//	    testdb.WithTx(t, db, fixture.Postgres, func(t *testing.T, fx *fixture.Fixture) {
//	        _, err := fx.Tx().ExecContext(ctx, "INSERT INTO users (name) VALUES ($1)", "ada")
//	        require.NoError(t, err)
//	        fx.AssertExistsInTable(t, "users", fixture.Criteria{"name": "ada"})
//	    })
//	}
//
// Tests that do not need Postgres can use NewSQLiteDB, which creates a
// database file under t.TempDir().
//
// # Environment
//
// The database URL comes from DBFIXTURE_TEST_DB_URL, DATABASE_URL or
// DBFIXTURE_DATABASE_URL, in that order. With the integration build tag and
// DBFIXTURE_TESTCONTAINERS=1, PostgresURLWithT starts a disposable container
// instead.
//
// # Seeding
//
// Seed commits its writes. Use it from TestMain for reference data that every
// test reads, never from inside a test transaction.
package testdb
