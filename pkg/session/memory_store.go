package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store for single-process deployments
// and tests. Safe for concurrent use. A background sweep evicts sessions
// that have been idle past the stale window, so abandoned tokens do not
// accumulate for the life of the process. Call Close to stop the sweep.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session

	cleanupInterval time.Duration
	staleAfter      time.Duration
	stopCleanup     chan struct{}
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often the stale-session sweep runs. Zero
// disables the background sweep.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.cleanupInterval = interval
	}
}

// WithStaleAfter sets how long a parked session may sit idle before the
// sweep evicts it.
func WithStaleAfter(window time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if window > 0 {
			s.staleAfter = window
		}
	}
}

// NewMemoryStore creates an in-memory session store. The stale window
// defaults to the default idle timeout; a session idle that long would be
// expired on resume anyway.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		sessions:        make(map[string]Session),
		cleanupInterval: 5 * time.Minute,
		staleAfter:      DefaultConfig().IdleTimeout(),
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cleanupInterval > 0 {
		go s.cleanup()
	}

	return s
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, token string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sess
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *MemoryStore) Close() {
	select {
	case <-s.stopCleanup:
	default:
		close(s.stopCleanup)
	}
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeStale()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) removeStale() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, sess := range s.sessions {
		if sess.IdleFor(now) > s.staleAfter {
			delete(s.sessions, token)
		}
	}
}
