package postgres

import (
	"context"

	"github.com/vaultkit/vaultkit/pkg/audit"
)

// Store implements audit.Storage. Rows are append-only; no update or delete
// statement exists anywhere in this package.
func (s *Storage) Store(ctx context.Context, event audit.Event) error {
	const query = `
		INSERT INTO audit_log (id, actor, action, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.pool.Exec(ctx, query,
		event.ID,
		event.Actor,
		event.Action,
		event.Metadata,
		event.CreatedAt,
	)
	return err
}

// QueryByActor implements audit.Storage. The insertion sequence, not the
// timestamp, drives the ordering so same-instant events stay monotonic.
func (s *Storage) QueryByActor(ctx context.Context, actor string, limit int) ([]audit.Event, error) {
	const query = `
		SELECT id, actor, action, metadata, created_at
		FROM audit_log
		WHERE actor = $1
		ORDER BY seq DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, actor, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// QueryAll implements audit.Storage.
func (s *Storage) QueryAll(ctx context.Context, limit int) ([]audit.Event, error) {
	const query = `
		SELECT id, actor, action, metadata, created_at
		FROM audit_log
		ORDER BY seq DESC
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows pgxRows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
