// Package fixture runs database integration tests inside a transaction that
// is always rolled back, and asserts on the presence or absence of rows.
//
// The test bootstrap owns the database handle and passes it in explicitly:
//
//	func TestMain(m *testing.M) {
//	    db, err := sql.Open("pgx", os.Getenv("DBFIXTURE_TEST_DB_URL"))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fx = fixture.New(fixture.Options{Conn: db, Dialect: fixture.Postgres})
//	    os.Exit(m.Run())
//	}
//
//	func TestCreateUser(t *testing.T) {
//	    fx.Attach(t) // Setup now, Teardown via t.Cleanup
//
//	    _, err := fx.Tx().ExecContext(ctx, `INSERT INTO users (id, name) VALUES ($1, $2)`, 5, "x")
//	    require.NoError(t, err)
//
//	    fx.AssertExistsInTable(t, "users", fixture.Criteria{"id": 5, "name": "x"})
//	}
//
// Every statement of the test body must go through Tx(); anything issued on
// the handle itself runs outside the test transaction and is not rolled back.
//
// A Fixture holds one transaction at a time and is not safe for concurrent
// use. Parallel tests each need their own Fixture.
//
// Table and column names are interpolated into the SQL as quoted identifiers
// because placeholders cannot stand for identifiers. They must come from the
// test author, never from data under test. Options.ValidateIdentifiers
// restricts them to letters, digits and underscores. Values are always bound
// as parameters.
package fixture
