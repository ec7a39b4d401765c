package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrUnknownRelation is returned when a query names a table or column
	// the database does not know about.
	ErrUnknownRelation = errors.New("unknown table or column")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin, commit or roll back.
	ErrTransactionFailed = errors.New("transaction failed")
)

// IsNotFoundError checks if the error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnknownRelationError checks if the error is or wraps ErrUnknownRelation.
func IsUnknownRelationError(err error) bool {
	return errors.Is(err, ErrUnknownRelation)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The table or entity involved (e.g., "users")
	Operation string // The operation that failed (e.g., "count", "seed")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
