package testdb

import (
	"log/slog"
	"os"

	"github.com/phrazzld/dbfixture/internal/ciutil"
)

// GetTestDatabaseURL returns the configured test database URL, or "".
func GetTestDatabaseURL() string {
	logger := slog.Default().With(
		slog.String("function", "testdb.GetTestDatabaseURL"),
		slog.Bool("ci_environment", ciutil.IsCI()),
	)
	return ciutil.GetTestDatabaseURL(logger)
}

// IsIntegrationTestEnvironment reports whether a test database URL is set.
func IsIntegrationTestEnvironment() bool {
	for _, envVar := range ciutil.TestDatabaseURLVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}

// ShouldSkipDatabaseTest returns true when database tests have nothing to connect to.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}

func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}
	return ciutil.MaskSensitiveValue(dbURL)
}
