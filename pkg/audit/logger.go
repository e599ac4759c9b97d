package audit

import (
	"context"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vaultkit/vaultkit/pkg/logger"
)

// Logger appends audit events on a best-effort basis. A storage failure never
// propagates to the caller: losing one audit record is preferred over failing
// the security operation being audited. Failures are reported on the
// operational slog channel instead.
type Logger struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithLogger sets the operational logger that receives swallowed append
// failures.
func WithLogger(log *slog.Logger) Option {
	return func(l *Logger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLogger creates a new audit logger.
func NewLogger(storage Storage, opts ...Option) *Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &Logger{
		storage: storage,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Log appends an event for the given actor. The actor may be empty for
// anonymous or failed-lookup events. Metadata beyond MaxMetadataLength is
// truncated on a rune boundary. The constructed event is returned so callers
// can surface it; storage failures are swallowed and only logged
// operationally.
func (l *Logger) Log(ctx context.Context, actor string, action Action, metadata string) Event {
	if len(metadata) > MaxMetadataLength {
		// Back up to a rune boundary so the cut never stores invalid UTF-8.
		cut := MaxMetadataLength
		for cut > 0 && !utf8.RuneStart(metadata[cut]) {
			cut--
		}
		metadata = metadata[:cut]
	}

	event := Event{
		ID:        uuid.New(),
		Actor:     actor,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: l.now(),
	}

	if err := event.Validate(); err != nil {
		l.log.ErrorContext(ctx, "dropping invalid audit event",
			logger.Component("audit"),
			logger.Action(string(action)),
			logger.Error(err),
		)
		return event
	}

	if err := l.storage.Store(ctx, event); err != nil {
		l.log.ErrorContext(ctx, "failed to append audit event",
			logger.Component("audit"),
			logger.Action(string(action)),
			logger.UserEmail(actor),
			logger.Error(err),
		)
	}

	return event
}
