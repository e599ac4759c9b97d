package audit

import "context"

// Storage persists audit events. Implementations must preserve append order
// per actor: two events stored sequentially for the same actor are returned
// in that relative order (newest first) by the query methods. Ordering across
// different actors is only as good as the event timestamps.
type Storage interface {
	// Store appends a single event.
	Store(ctx context.Context, event Event) error

	// QueryByActor returns the actor's events, newest first, at most limit
	// records. Limit is positive; Reader normalizes before calling.
	QueryByActor(ctx context.Context, actor string, limit int) ([]Event, error)

	// QueryAll returns events for all actors, newest first, at most limit
	// records. Access control is the caller's responsibility.
	QueryAll(ctx context.Context, limit int) ([]Event, error)
}
