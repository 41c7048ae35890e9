//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database. Tests are skipped unless a database URL is set, and
// WithTx gives each test a transaction that is always rolled back.
package testdb
