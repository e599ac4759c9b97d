package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vaultkit/vaultkit/pkg/audit"
	"github.com/vaultkit/vaultkit/pkg/credential"
	"github.com/vaultkit/vaultkit/pkg/lockout"
	"github.com/vaultkit/vaultkit/pkg/otp"
)

// Manager drives the login state machine: password verification with
// lockout enforcement, mandatory TOTP second factor, idle-timeout expiry,
// and an audit record for every security-relevant transition.
//
// Sessions are values. Every method takes the caller's current session and
// returns the next one; the caller owns the session's lifecycle.
type Manager struct {
	users    UserStore
	lockouts *lockout.Policy
	auditor  *audit.Logger
	reader   *audit.Reader
	cfg      Config
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a session manager. All collaborators are required;
// a missing one is a programming error, not a runtime condition.
func NewManager(users UserStore, lockouts *lockout.Policy, auditor *audit.Logger, reader *audit.Reader, cfg Config, opts ...Option) *Manager {
	if users == nil {
		panic("session: user store cannot be nil")
	}
	if lockouts == nil {
		panic("session: lockout policy cannot be nil")
	}
	if auditor == nil {
		panic("session: audit logger cannot be nil")
	}
	if reader == nil {
		panic("session: audit reader cannot be nil")
	}
	if cfg.IdleSeconds <= 0 {
		cfg.IdleSeconds = DefaultConfig().IdleSeconds
	}

	m := &Manager{
		users:    users,
		lockouts: lockouts,
		auditor:  auditor,
		reader:   reader,
		cfg:      cfg,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Register creates a new account: the password must pass the policy and not
// appear on the common-password list, and a fresh TOTP secret is enrolled.
// The returned user includes the secret so the caller can render the
// provisioning QR code once, at enrollment.
func (m *Manager) Register(ctx context.Context, email, password string, role Role) (User, error) {
	if email == "" {
		return User{}, ErrEmailRequired
	}
	if !role.Valid() {
		role = RoleUser
	}

	if err := credential.PolicyCheck(password); err != nil {
		return User{}, err
	}
	if credential.IsCommonPassword(password) {
		return User{}, ErrCommonPassword
	}

	hash, err := credential.Hash(password)
	if err != nil {
		return User{}, err
	}

	secret, err := otp.GenerateSecretKey()
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		TOTPSecret:   secret,
		Role:         role,
		CreatedAt:    m.now(),
	}

	if err := m.users.CreateUser(ctx, user); err != nil {
		return User{}, err
	}

	m.auditor.Log(ctx, email, audit.ActionRegister, "role="+string(role))

	return user, nil
}

// SubmitPassword is the first login step. The outcome for an unknown email
// and a wrong password is the same error value and costs the same hash
// comparison, so a caller cannot probe which emails are registered by
// content or by timing. Failed attempts count toward lockout; a locked
// account rejects the attempt before any credential check.
//
// On success the returned session is StatePasswordVerified and carries the
// identity, role, and TOTP secret for the second step. Accounts without an
// enrolled second factor go straight to StateAuthenticated.
func (m *Manager) SubmitPassword(ctx context.Context, email, password string) (Session, error) {
	anon := m.newSession(StateAnonymous)

	locked, err := m.lockouts.IsLocked(ctx, email)
	if err != nil {
		return anon, err
	}
	if locked {
		m.auditor.Log(ctx, email, audit.ActionLoginAttemptLocked, "")
		return anon, ErrAccountLocked
	}

	user, err := m.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn the same hashing cost as a real comparison so the
			// response time does not reveal that the email is unregistered.
			credential.VerifyDecoy(password)
			m.auditor.Log(ctx, "", audit.ActionLoginFailUnknownUser, "email="+email)
			return anon, ErrInvalidCredentials
		}
		return anon, err
	}

	if !credential.Verify(password, user.PasswordHash) {
		count, recErr := m.lockouts.RecordFailure(ctx, email)
		if recErr != nil {
			return anon, recErr
		}
		m.auditor.Log(ctx, email, audit.ActionLoginFailBadPassword,
			fmt.Sprintf("failed_attempts=%d threshold=%d", count, m.lockouts.Threshold()))
		return anon, ErrInvalidCredentials
	}

	if err := m.lockouts.Reset(ctx, email); err != nil {
		return anon, err
	}

	sess := m.newSession(StatePasswordVerified)
	sess.Email = user.Email
	sess.Role = user.Role
	sess.TOTPSecret = user.TOTPSecret

	m.auditor.Log(ctx, email, audit.ActionPasswordVerified, "")

	// No second factor enrolled: password alone completes the login.
	if user.TOTPSecret == "" {
		sess.State = StateAuthenticated
	}

	return sess, nil
}

// SubmitCode is the second login step. A malformed code (anything but six
// digits) is rejected without an audit record; a well-formed code that does
// not match any accepted window emits totp_failed and leaves the session
// waiting. Second-factor failures do not count toward account lockout.
func (m *Manager) SubmitCode(ctx context.Context, sess Session, code string) (Session, error) {
	if sess.State != StatePasswordVerified {
		return sess, ErrNotPendingSecondFactor
	}

	ok, err := otp.ValidateCodeAt(sess.TOTPSecret, code, m.now())
	if err != nil {
		return sess, err
	}
	if !ok {
		m.auditor.Log(ctx, sess.Email, audit.ActionTOTPFailed, "")
		return sess, ErrInvalidOTPCode
	}

	sess.State = StateAuthenticated
	sess.TOTPSecret = ""
	sess.LastActivityAt = m.now()

	m.auditor.Log(ctx, sess.Email, audit.ActionTOTPVerified, "")

	return sess, nil
}

// Cancel abandons a pending login and returns a fresh anonymous session.
func (m *Manager) Cancel(sess Session) Session {
	return m.newSession(StateAnonymous)
}

// Touch must be called on every request an authenticated session makes.
// If the idle timeout has elapsed the session is forced back to anonymous
// and ErrSessionExpired is returned; otherwise the activity timestamp is
// refreshed.
func (m *Manager) Touch(ctx context.Context, sess Session) (Session, error) {
	if sess.State != StateAuthenticated {
		return sess, nil
	}

	now := m.now()
	if sess.IdleFor(now) > m.cfg.IdleTimeout() {
		m.auditor.Log(ctx, sess.Email, audit.ActionSessionTimeout,
			fmt.Sprintf("idle_seconds=%d", int(sess.IdleFor(now).Seconds())))
		return m.newSession(StateAnonymous), ErrSessionExpired
	}

	sess.LastActivityAt = now
	return sess, nil
}

// Logout ends an authenticated session and returns a fresh anonymous one.
func (m *Manager) Logout(ctx context.Context, sess Session) (Session, error) {
	if sess.State == StateAuthenticated {
		m.auditor.Log(ctx, sess.Email, audit.ActionLogout, "")
	}
	return m.newSession(StateAnonymous), nil
}

// AuditTrail returns the caller's own audit records, newest first. Requires
// a fully authenticated session; the state check happens here, at call time.
func (m *Manager) AuditTrail(ctx context.Context, sess Session, limit int) ([]audit.Event, error) {
	if !sess.IsAuthenticated() {
		return nil, ErrUnauthorized
	}
	return m.reader.ByActor(ctx, sess.Email, limit)
}

// FullAuditTrail returns audit records across all actors, newest first.
// Requires an authenticated admin session; both state and role are
// re-checked at call time, never cached from an earlier step.
func (m *Manager) FullAuditTrail(ctx context.Context, sess Session, limit int) ([]audit.Event, error) {
	if !sess.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return m.reader.All(ctx, limit)
}

func (m *Manager) newSession(state State) Session {
	now := m.now()
	return Session{
		ID:             uuid.New(),
		State:          state,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}
