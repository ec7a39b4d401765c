package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		notFound        bool
		unknownRelation bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, notFound: true},
		{name: "wrapped ErrNotFound", err: fmt.Errorf("lookup: %w", ErrNotFound), notFound: true},
		{name: "ErrUnknownRelation", err: ErrUnknownRelation, unknownRelation: true},
		{
			name:            "StoreError wrapping ErrUnknownRelation",
			err:             NewStoreError("users", "count", "query failed", ErrUnknownRelation),
			unknownRelation: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.notFound, IsNotFoundError(tc.err))
			assert.Equal(t, tc.unknownRelation, IsUnknownRelationError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	withCause := NewStoreError("users", "count", "query failed", cause)
	assert.Equal(t, "count operation on users failed: query failed: connection reset", withCause.Error())
	assert.ErrorIs(t, withCause, cause)

	var target *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", withCause), &target))
	assert.Equal(t, "users", target.Entity)

	bare := NewStoreError("users", "seed", "no rows", nil)
	assert.Equal(t, "seed operation on users failed: no rows", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
