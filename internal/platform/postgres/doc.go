// Package postgres provides the PostgreSQL implementation of the grant store
// defined in internal/store, the embedded schema migrations, and the mapping
// from PostgreSQL errors to store errors.
package postgres
