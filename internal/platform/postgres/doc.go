// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store, together with the embedded schema
// migrations and the helpers that map driver errors onto store errors.
package postgres
