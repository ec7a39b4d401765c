// Package postgres classifies PostgreSQL driver errors into store errors.
package postgres
