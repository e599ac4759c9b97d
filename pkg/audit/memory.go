package audit

import (
	"context"
	"sync"
)

// MemoryStorage implements Storage in memory. Appends are safe for
// concurrent use and per-actor ordering follows append order exactly; a
// sequence number breaks ties between events sharing a timestamp.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryStorage creates an empty in-memory audit storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store appends a single event.
func (m *MemoryStorage) Store(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// QueryByActor returns the actor's events, newest first.
func (m *MemoryStorage) QueryByActor(_ context.Context, actor string, limit int) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Event
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].Actor != actor {
			continue
		}
		out = append(out, m.events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// QueryAll returns all events, newest first.
func (m *MemoryStorage) QueryAll(_ context.Context, limit int) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Event
	for i := len(m.events) - 1; i >= 0; i-- {
		out = append(out, m.events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Len returns the number of stored events.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}
