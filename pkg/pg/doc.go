// Package pg bootstraps the PostgreSQL layer for the vault: a pgx/v5
// connection pool with startup retry, goose migrations applied from an
// embedded filesystem, a health check closure, and error classification
// helpers for unique and foreign key violations.
//
// The pieces are deliberately decoupled: Connect opens the pool, Migrate
// brings the schema up to date before the service starts serving, and
// Healthcheck plugs into any health endpoint expecting
// func(context.Context) error.
package pg
