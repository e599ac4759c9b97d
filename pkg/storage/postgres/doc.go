// Package postgres persists the vault's state in PostgreSQL: user accounts
// with their lockout counters, the append-only audit trail, and the
// transaction ledger. It implements session.UserStore, lockout.Store,
// audit.Storage, and ledger.Storage on a single pgx connection pool.
//
// Lockout counter updates run as a single UPDATE with a conditional expiry
// assignment, which is what makes concurrent failed-login attempts safe.
// Schema migrations are embedded and applied on Connect.
package postgres
