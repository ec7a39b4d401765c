// Package store defines the query surface shared by database handles and
// transactions, the committed-transaction helper used for seeding, and the
// errors reported by database operations.
package store
