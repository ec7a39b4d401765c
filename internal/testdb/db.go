package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/dbfixture/internal/config"
	"github.com/phrazzld/dbfixture/internal/fixture"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // sqlite driver
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// Driver names registered by the imported database/sql drivers.
const (
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
)

// Open opens and pings the database at dbURL. The driver is chosen from the
// URL scheme: postgres URLs use pgx, sqlite://, file: and :memory: use sqlite.
func Open(ctx context.Context, dbURL string) (*sql.DB, error) {
	driver := config.DriverForURL(dbURL)
	if driver == "" {
		return nil, fmt.Errorf("unsupported database URL %q", maskDatabaseURL(dbURL))
	}

	db, err := sql.Open(driver, dataSourceName(driver, dbURL))
	if err != nil {
		return nil, formatDBConnectionError(err, dbURL)
	}

	if driver == DriverSQLite {
		// Every connection to :memory: is a separate database, and sqlite
		// allows one writer anyway.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, TestTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("%w (close error: %v)", formatDBConnectionError(err, dbURL), closeErr)
		}
		return nil, formatDBConnectionError(err, dbURL)
	}

	return db, nil
}

// DriverName returns the database/sql driver Open would use for dbURL, or "".
func DriverName(dbURL string) string {
	return config.DriverForURL(dbURL)
}

// DialectForDriver returns the fixture dialect matching a driver name.
func DialectForDriver(driver string) (fixture.Dialect, error) {
	switch driver {
	case DriverPgx:
		return fixture.Postgres, nil
	case DriverSQLite:
		return fixture.SQLite, nil
	default:
		return nil, fmt.Errorf("%w: no dialect for driver %q", fixture.ErrUnknownDialect, driver)
	}
}

func dataSourceName(driver, dbURL string) string {
	if driver == DriverSQLite {
		return strings.TrimPrefix(dbURL, "sqlite://")
	}
	return dbURL
}

// OpenWithT opens dbURL, failing the test on error and closing the database
// when the test finishes.
func OpenWithT(t *testing.T, dbURL string) *sql.DB {
	t.Helper()

	db, err := Open(context.Background(), dbURL)
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() {
		CleanupDB(t, db)
	})

	return db
}

// GetTestDBWithT returns a connection to the configured test database.
// It skips the test when no database URL is set.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DBFIXTURE_TEST_DB_URL or DATABASE_URL not set - skipping integration test")
	}

	return OpenWithT(t, dbURL)
}

// NewSQLiteDB returns an empty SQLite database in a file under t.TempDir().
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	return OpenWithT(t, "sqlite://"+filepath.Join(t.TempDir(), "test.db"))
}

// CleanupDB properly closes a database connection, logging any errors.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}

	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}
