package session

import (
	"time"

	"github.com/google/uuid"
)

// State is the position of a session in the login state machine. A session
// is always in exactly one state, and identity and role carried by the
// session are only trustworthy in StateAuthenticated.
type State string

const (
	// StateAnonymous is the initial state. No identity is bound.
	StateAnonymous State = "anonymous"

	// StatePasswordVerified means the password was accepted and the session
	// is waiting for the second factor. Identity is bound but not trusted.
	StatePasswordVerified State = "password_verified"

	// StateAuthenticated means both factors were accepted.
	StateAuthenticated State = "authenticated"
)

// Session is an ephemeral login session. It is a value owned by the caller:
// every Manager operation takes the current session and returns the next one,
// so there is no process-wide session state anywhere in this package.
type Session struct {
	ID             uuid.UUID `json:"id"`
	State          State     `json:"state"`
	Email          string    `json:"email,omitempty"`
	Role           Role      `json:"role,omitempty"`
	TOTPSecret     string    `json:"totp_secret,omitempty"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewSession returns a fresh anonymous session.
func NewSession() Session {
	now := time.Now()
	return Session{
		ID:             uuid.New(),
		State:          StateAnonymous,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsAuthenticated reports whether both factors have been verified.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated
}

// IsAdmin reports whether the session is fully authenticated as an admin.
// Both conditions are evaluated here, together, so callers cannot cache a
// role decision from an earlier state.
func (s Session) IsAdmin() bool {
	return s.State == StateAuthenticated && s.Role == RoleAdmin
}

// IdleFor returns how long the session has been inactive as of now.
func (s Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastActivityAt)
}
