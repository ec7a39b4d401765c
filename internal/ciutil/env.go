package ciutil

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Common environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI               = "CI"
	EnvGitHubActions    = "GITHUB_ACTIONS"
	EnvGitHubWorkspace  = "GITHUB_WORKSPACE"
	EnvGitLabCI         = "GITLAB_CI"
	EnvGitLabProjectDir = "CI_PROJECT_DIR"
	EnvJenkinsURL       = "JENKINS_URL"
	EnvTravisCI         = "TRAVIS"
	EnvCircleCI         = "CIRCLECI"

	// Database connection environment variables
	EnvTestDBURL      = "DBFIXTURE_TEST_DB_URL" // Preferred name
	EnvDatabaseURL    = "DATABASE_URL"
	EnvAppDatabaseURL = "DBFIXTURE_DATABASE_URL"

	// EnvTestcontainers opts integration tests into starting their own Postgres.
	EnvTestcontainers = "DBFIXTURE_TESTCONTAINERS"
)

// ciVars lists the variables whose presence marks a CI run.
var ciVars = []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvTravisCI, EnvCircleCI}

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// IsGitHubActions returns true if the current environment is GitHub Actions.
func IsGitHubActions() bool {
	return os.Getenv(EnvGitHubActions) != "" && os.Getenv(EnvGitHubWorkspace) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty environment variable
// from the provided list. If no environment variables are set, it returns the defaultValue.
// Using any variable but the first logs a warning naming the preferred one.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("Using fallback environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", MaskSensitiveValue(val),
				)
			}
			return val
		}
	}
	return defaultValue
}

// MaskSensitiveValue masks sensitive data in values like database URLs to prevent
// exposing credentials in logs. This should be used whenever potentially sensitive
// environment variable values are logged.
func MaskSensitiveValue(value string) string {
	if u, err := url.Parse(value); err == nil && u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "****")
			// url.String escapes the asterisks; undo that for readability
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return value
	}

	// For non-URL values that might contain tokens or keys
	lower := strings.ToLower(value)
	if len(value) > 8 && (strings.Contains(lower, "key") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "secret") ||
		strings.Contains(lower, "password")) {
		return value[:4] + "****" + value[len(value)-4:]
	}

	return value
}
