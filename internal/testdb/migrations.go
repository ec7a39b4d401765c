package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/pressly/goose/v3"
)

// MigrationsTable is the goose version table created in test databases.
const MigrationsTable = "schema_migrations"

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending goose migration found in dir of fsys.
func Migrate(ctx context.Context, db *sql.DB, driver string, fsys fs.FS, dir string) error {
	return migrate(ctx, db, driver, fsys, dir, goose.NopLogger())
}

// MigrateWithT applies migrations, logging goose output through t and failing
// the test on error.
func MigrateWithT(t *testing.T, db *sql.DB, driver string, fsys fs.FS, dir string) {
	t.Helper()

	if err := migrate(context.Background(), db, driver, fsys, dir, &testGooseLogger{t: t}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
}

func migrate(ctx context.Context, db *sql.DB, driver string, fsys fs.FS, dir string, logger goose.Logger) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(logger)
	goose.SetTableName(MigrationsTable)
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect %q: %w", dialect, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return formatMigrationError(err, fsys, dir)
	}

	return nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case DriverPgx:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migration dialect for driver %q", driver)
	}
}

// testGooseLogger routes goose output to the test log.
type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log("Goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatal("Goose fatal error: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
