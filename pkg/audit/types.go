package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action identifies a security-relevant event. The vocabulary is fixed;
// storage implementations may rely on it.
type Action string

const (
	ActionRegister             Action = "register"
	ActionLoginFailUnknownUser Action = "login_fail_unknown_user"
	ActionLoginFailBadPassword Action = "login_fail_bad_password"
	ActionLoginAttemptLocked   Action = "login_attempt_locked"
	ActionPasswordVerified     Action = "password_verified"
	ActionTOTPVerified         Action = "totp_verified"
	ActionTOTPFailed           Action = "totp_failed"
	ActionSessionTimeout       Action = "session_timeout"
	ActionLogout               Action = "logout"
	ActionAddTransaction       Action = "add_transaction"
)

var knownActions = map[Action]bool{
	ActionRegister:             true,
	ActionLoginFailUnknownUser: true,
	ActionLoginFailBadPassword: true,
	ActionLoginAttemptLocked:   true,
	ActionPasswordVerified:     true,
	ActionTOTPVerified:         true,
	ActionTOTPFailed:           true,
	ActionSessionTimeout:       true,
	ActionLogout:               true,
	ActionAddTransaction:       true,
}

// Valid reports whether the action belongs to the fixed vocabulary.
func (a Action) Valid() bool {
	return knownActions[a]
}

// MaxMetadataLength bounds the free-text metadata; longer values are
// truncated before storage.
const MaxMetadataLength = 512

// Event is a single immutable audit record. There is no update or delete
// operation anywhere in the package: records are appended and read, never
// destroyed by this core.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Actor     string    `json:"actor,omitempty"` // empty for anonymous or failed-lookup events
	Action    Action    `json:"action"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the event has all required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	if !e.Action.Valid() {
		return fmt.Errorf("%w: unknown action %q", ErrEventValidation, e.Action)
	}
	return nil
}
