package testdb

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/phrazzld/dbfixture/internal/ciutil"
)

// formatDBConnectionError wraps a connection failure with the masked URL,
// environment details and troubleshooting steps.
func formatDBConnectionError(baseErr error, dbURL string) error {
	return fmt.Errorf("database connection failed: %w\n"+
		"Database URL used: %s (masked)\n"+
		"CI environment: %v\nCurrent working directory: %s\n"+
		"Please check:\n"+
		"1. The database server is running, or the sqlite path is writable\n"+
		"2. Credentials and connection string are correct\n"+
		"3. Database exists and is accessible",
		baseErr, maskDatabaseURL(dbURL), ciutil.IsCI(), currentDir())
}

// formatMigrationError wraps a goose failure with the migration files it could see.
func formatMigrationError(baseErr error, fsys fs.FS, dir string) error {
	migrationFiles := "none found"
	if entries, err := fs.ReadDir(fsys, dir); err == nil {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		if len(names) > 0 {
			migrationFiles = fmt.Sprintf("%v", names)
		}
	}

	return fmt.Errorf("failed to run database migrations in %s (migration files: %s): %w",
		dir, migrationFiles, baseErr)
}

func currentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
