package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/dbfixture/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedError error
		expectedMsg   string
	}{
		{
			name: "nil_error",
		},
		{
			name:          "sql_no_rows",
			err:           sql.ErrNoRows,
			expectedError: store.ErrNotFound,
		},
		{
			name:          "undefined_table",
			err:           &pgconn.PgError{Code: undefinedTableCode, Message: `relation "users" does not exist`},
			expectedError: store.ErrUnknownRelation,
			expectedMsg:   `relation "users" does not exist`,
		},
		{
			name:          "undefined_column",
			err:           fmt.Errorf("prepare: %w", &pgconn.PgError{Code: undefinedColumnCode, Message: `column "nme" does not exist`}),
			expectedError: store.ErrUnknownRelation,
			expectedMsg:   `column "nme" does not exist`,
		},
		{
			name:          "in_failed_transaction",
			err:           &pgconn.PgError{Code: inFailedTransactionCode},
			expectedError: store.ErrTransactionFailed,
			expectedMsg:   "transaction aborted",
		},
		{
			name:        "unmapped_pg_error",
			err:         &pgconn.PgError{Code: "23505", Message: "duplicate key"},
			expectedMsg: "duplicate key",
		},
		{
			name:        "generic_error",
			err:         errors.New("connection refused"),
			expectedMsg: "connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := MapError(tc.err)

			if tc.err == nil {
				assert.NoError(t, result)
				return
			}

			assert.ErrorIs(t, result, tc.err, "original error must stay in the chain")
			if tc.expectedError != nil {
				assert.ErrorIs(t, result, tc.expectedError)
			}
			if tc.expectedMsg != "" {
				assert.Contains(t, result.Error(), tc.expectedMsg)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	table := &pgconn.PgError{Code: undefinedTableCode}
	column := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: undefinedColumnCode})

	assert.True(t, IsUndefinedTable(table))
	assert.False(t, IsUndefinedTable(column))
	assert.True(t, IsUndefinedColumn(column))
	assert.False(t, IsUndefinedColumn(errors.New("plain")))
}
