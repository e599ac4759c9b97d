package session

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords. The single message prevents user enumeration: callers must
	// not be able to tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountLocked indicates the account is inside a lockout window and
	// all login attempts are rejected regardless of credentials.
	ErrAccountLocked = errors.New("account is temporarily locked")

	// ErrSessionExpired indicates the idle timeout elapsed and the session
	// was forced back to anonymous.
	ErrSessionExpired = errors.New("session expired due to inactivity")

	// ErrNotPendingSecondFactor indicates a second-factor code was submitted
	// for a session that is not waiting for one.
	ErrNotPendingSecondFactor = errors.New("session is not awaiting a second factor")

	// ErrInvalidOTPCode indicates a well-formed code that did not match any
	// accepted time window.
	ErrInvalidOTPCode = errors.New("invalid verification code")

	// ErrUnauthorized indicates the session's state or role does not permit
	// the requested operation.
	ErrUnauthorized = errors.New("operation not permitted")

	// ErrEmailAlreadyExists indicates a registration attempt with a taken
	// email.
	ErrEmailAlreadyExists = errors.New("email is already registered")

	// ErrEmailRequired rejects registration without an email.
	ErrEmailRequired = errors.New("email is required")

	// ErrCommonPassword rejects passwords from the known-compromised list at
	// registration time.
	ErrCommonPassword = errors.New("password is too common")

	// ErrUserNotFound indicates no account exists for the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionNotFound indicates no parked session exists for the token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTokenGeneration indicates session token generation failed.
	ErrTokenGeneration = errors.New("failed to generate session token")
)
