package fixture

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingConnection is wrapped by every ConfigurationError.
	ErrMissingConnection = errors.New("missing required connection handle")

	// ErrNoTransaction is returned by queries issued while no test
	// transaction is open.
	ErrNoTransaction = errors.New("no test transaction is open")

	// ErrTransactionActive is returned by Setup when the previous test's
	// transaction was never torn down.
	ErrTransactionActive = errors.New("a test transaction is already open")

	// ErrInvalidIdentifier is returned for empty table or column names, and
	// for names rejected by identifier validation.
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")

	// ErrUnknownDialect is returned by DialectByName.
	ErrUnknownDialect = errors.New("unknown SQL dialect")
)

// ConfigurationError reports that the fixture was used without a connection
// handle. It is a bootstrap mistake rather than a test failure.
type ConfigurationError struct {
	// Op is the lifecycle step that found the handle missing.
	Op string
}

// Error explains how to supply the handle.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("fixture %s: %v.\n"+
		"The transactional fixture needs a database handle set by the test bootstrap, for example in TestMain:\n\n"+
		"\tdb, err := sql.Open(driver, dsn)\n"+
		"\tfx := fixture.New(fixture.Options{Conn: db})\n\n"+
		"or, from configuration, fixture.NewFromConfig(db, cfg.Fixture, logger)",
		e.Op, ErrMissingConnection)
}

// Unwrap returns ErrMissingConnection.
func (e *ConfigurationError) Unwrap() error {
	return ErrMissingConnection
}

func invalidIdentifier(kind, name, reason string) error {
	return fmt.Errorf("%w: %s %q %s", ErrInvalidIdentifier, kind, name, reason)
}
