package postgres

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaultkit/vaultkit/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Storage implements the vault's persistence contracts on PostgreSQL: user
// accounts, lockout counters, the append-only audit trail, and the
// transaction ledger. One instance serves all four.
type Storage struct {
	pool *pgxpool.Pool
}

// New wraps an existing connection pool.
func New(pool *pgxpool.Pool) *Storage {
	if pool == nil {
		panic("postgres: pool cannot be nil")
	}
	return &Storage{pool: pool}
}

// Connect opens a pool from config and returns a ready Storage. Migrations
// are applied before the storage is handed out.
func Connect(ctx context.Context, cfg pg.Config, log logger) (*Storage, error) {
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pg.Migrate(ctx, pool, migrations, "migrations", cfg, log); err != nil {
		pool.Close()
		return nil, err
	}

	return New(pool), nil
}

// Close releases the underlying pool.
func (s *Storage) Close() {
	s.pool.Close()
}

// Healthcheck returns a ping closure for health endpoints.
func (s *Storage) Healthcheck() func(context.Context) error {
	return pg.Healthcheck(s.pool)
}

type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
