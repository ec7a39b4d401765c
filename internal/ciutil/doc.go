// Package ciutil provides utilities for CI and environment-specific functionality.
//
// It detects the execution environment (CI or local), resolves the test
// database URL from a list of environment variables with fallbacks, and masks
// credentials before they reach a log line.
package ciutil
