package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/dbfixture/internal/store"
)

// PostgreSQL error codes
const (
	// undefinedTableCode is raised when a query names a missing table or view
	undefinedTableCode = "42P01"

	// undefinedColumnCode is raised when a query names a missing column
	undefinedColumnCode = "42703"

	// inFailedTransactionCode means an earlier statement failed and the
	// transaction only accepts ROLLBACK from now on
	inFailedTransactionCode = "25P02"
)

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context and provide better debugging information.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case undefinedTableCode, undefinedColumnCode:
			return fmt.Errorf("%w: %s: %w", store.ErrUnknownRelation, pgErr.Message, err)
		case inFailedTransactionCode:
			return fmt.Errorf(
				"%w: transaction aborted by an earlier statement: %w",
				store.ErrTransactionFailed,
				err,
			)
		}
	}

	return err
}

// IsUndefinedTable checks if the given error is a PostgreSQL undefined table error.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode
}

// IsUndefinedColumn checks if the given error is a PostgreSQL undefined column error.
func IsUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedColumnCode
}
