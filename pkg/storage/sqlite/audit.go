package sqlite

import (
	"context"
	"database/sql"

	"github.com/vaultkit/vaultkit/pkg/audit"
)

// Store implements audit.Storage. Rows are append-only; no update or delete
// statement exists anywhere in this package.
func (s *Storage) Store(ctx context.Context, event audit.Event) error {
	const query = `
		INSERT INTO audit_log (id, actor, action, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Actor,
		event.Action,
		event.Metadata,
		event.CreatedAt,
	)
	return err
}

// QueryByActor implements audit.Storage. Ordering follows the insertion
// sequence so same-instant events stay monotonic.
func (s *Storage) QueryByActor(ctx context.Context, actor string, limit int) ([]audit.Event, error) {
	const query = `
		SELECT id, actor, action, metadata, created_at
		FROM audit_log
		WHERE actor = ?
		ORDER BY seq DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, actor, limit)
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
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
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
