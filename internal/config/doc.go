// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the settings a test bootstrap needs to open a database
// and build a transactional fixture.
package config
