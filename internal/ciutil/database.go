package ciutil

import "log/slog"

// TestDatabaseURLVars lists the variables consulted for a test database URL,
// in order of precedence.
var TestDatabaseURLVars = []string{EnvTestDBURL, EnvDatabaseURL, EnvAppDatabaseURL}

// GetTestDatabaseURL returns a database URL for testing purposes.
// It checks DBFIXTURE_TEST_DB_URL, DATABASE_URL and DBFIXTURE_DATABASE_URL in
// that order and returns the first non-empty value, or "" when none is set.
// In CI an empty result is logged as an error since integration tests will be skipped.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(TestDatabaseURLVars, "", logger)

	if logger == nil {
		return dbURL
	}

	if dbURL == "" {
		if IsCI() {
			logger.Error("no database URL found in CI environment",
				"checked_variables", TestDatabaseURLVars,
				"impact", "database tests will be skipped",
			)
		} else {
			logger.Debug("no database URL environment variables found")
		}
		return ""
	}

	logger.Debug("using test database URL", "value", MaskSensitiveValue(dbURL))
	return dbURL
}
