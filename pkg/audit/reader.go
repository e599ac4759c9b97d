package audit

import "context"

// DefaultQueryLimit caps reads when the caller does not specify a limit.
const DefaultQueryLimit = 50

// Reader queries stored audit events. It performs no access control of its
// own; restricting QueryAll to administrators is the session manager's job.
type Reader struct {
	storage Storage
}

// NewReader creates a new audit reader.
func NewReader(storage Storage) *Reader {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	return &Reader{storage: storage}
}

// ByActor returns the actor's events, newest first.
func (r *Reader) ByActor(ctx context.Context, actor string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return r.storage.QueryByActor(ctx, actor, limit)
}

// All returns events across all actors, newest first.
func (r *Reader) All(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return r.storage.QueryAll(ctx, limit)
}
