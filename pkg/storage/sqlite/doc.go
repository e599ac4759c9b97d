// Package sqlite persists the vault's state in a single SQLite file: user
// accounts with their lockout counters, the append-only audit trail, and the
// transaction ledger. It implements session.UserStore, lockout.Store,
// audit.Storage, and ledger.Storage, mirroring the PostgreSQL backend, and
// doubles as the storage used by the test suite via ":memory:".
package sqlite
