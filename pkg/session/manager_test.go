package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaultkit/vaultkit/pkg/audit"
	"github.com/vaultkit/vaultkit/pkg/credential"
	"github.com/vaultkit/vaultkit/pkg/lockout"
	"github.com/vaultkit/vaultkit/pkg/session"
)

// Fixed TOTP secret (base32 of the RFC 4226 test key) with known codes at
// the pinned test instant.
const (
	testSecret    = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	testCode      = "921300" // valid at testInstant
	wrongCode     = "111111" // six digits, not valid in any accepted window
	testEmail     = "lucius@wayne.example"
	testPassword  = "Br0ken!Bat"
	otherPassword = "Wr0ng!Pass"
)

var testInstant = time.Unix(1700000000, 0)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]session.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]session.User)}
}

func (s *memUserStore) FindUserByEmail(_ context.Context, email string) (session.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return session.User{}, session.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) CreateUser(_ context.Context, user session.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return session.ErrEmailAlreadyExists
	}
	s.users[user.Email] = user
	return nil
}

type memLockoutStore struct {
	mu    sync.Mutex
	now   func() time.Time
	count map[string]int
	until map[string]*time.Time
}

func newMemLockoutStore(now func() time.Time) *memLockoutStore {
	return &memLockoutStore{
		now:   now,
		count: make(map[string]int),
		until: make(map[string]*time.Time),
	}
}

func (s *memLockoutStore) RecordFailure(_ context.Context, email string, threshold int, lockFor time.Duration) (int, *time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count[email]++
	if s.count[email] >= threshold {
		until := s.now().Add(lockFor)
		s.until[email] = &until
	}
	return s.count[email], s.until[email], nil
}

func (s *memLockoutStore) LockoutState(_ context.Context, email string) (int, *time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count[email], s.until[email], nil
}

func (s *memLockoutStore) ResetLockout(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count[email] = 0
	s.until[email] = nil
	return nil
}

// testHarness bundles a manager with its fakes. The clock is a pointer so
// tests can move time forward.
type testHarness struct {
	manager  *session.Manager
	users    *memUserStore
	lockouts *memLockoutStore
	auditMem *audit.MemoryStorage
	current  *time.Time
}

func (h *testHarness) advance(d time.Duration) {
	*h.current = h.current.Add(d)
}

func (h *testHarness) actions(actor string) []audit.Action {
	events, _ := h.auditMem.QueryByActor(context.Background(), actor, 100)
	actions := make([]audit.Action, len(events))
	for i, e := range events {
		actions[i] = e.Action
	}
	return actions
}

func newHarness(t *testing.T, cfg session.Config) *testHarness {
	t.Helper()

	current := testInstant
	now := func() time.Time { return current }

	users := newMemUserStore()
	lockStore := newMemLockoutStore(now)
	auditMem := audit.NewMemoryStorage()

	manager := session.NewManager(
		users,
		lockout.New(lockStore, lockout.DefaultConfig(), lockout.WithClock(now)),
		audit.NewLogger(auditMem, audit.WithClock(now)),
		audit.NewReader(auditMem),
		cfg,
		session.WithClock(now),
	)

	return &testHarness{
		manager:  manager,
		users:    users,
		lockouts: lockStore,
		auditMem: auditMem,
		current:  &current,
	}
}

// seedUser creates a user directly in the store with a cheap bcrypt cost so
// tests stay fast.
func (h *testHarness) seedUser(t *testing.T, email, password, totpSecret string, role session.Role) {
	t.Helper()
	hash, err := credential.HashWithCost(password, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, h.users.CreateUser(context.Background(), session.User{
		Email:        email,
		PasswordHash: hash,
		TOTPSecret:   totpSecret,
		Role:         role,
		CreatedAt:    testInstant,
	}))
}

func TestManagerLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("full two-factor login", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)

		sess, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.NoError(t, err)
		assert.Equal(t, session.StatePasswordVerified, sess.State)
		assert.Equal(t, testEmail, sess.Email)
		assert.False(t, sess.IsAuthenticated())

		sess, err = h.manager.SubmitCode(ctx, sess, testCode)
		require.NoError(t, err)
		assert.Equal(t, session.StateAuthenticated, sess.State)
		assert.Empty(t, sess.TOTPSecret)
		assert.True(t, sess.IsAuthenticated())

		assert.Equal(t, []audit.Action{audit.ActionTOTPVerified, audit.ActionPasswordVerified}, h.actions(testEmail))
	})

	t.Run("no second factor enrolled skips straight to authenticated", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, "", session.RoleUser)

		sess, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.NoError(t, err)
		assert.Equal(t, session.StateAuthenticated, sess.State)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)

		_, unknownErr := h.manager.SubmitPassword(ctx, "x@y.com", testPassword)
		_, wrongErr := h.manager.SubmitPassword(ctx, testEmail, otherPassword)

		require.ErrorIs(t, unknownErr, session.ErrInvalidCredentials)
		require.ErrorIs(t, wrongErr, session.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())

		// The trail still distinguishes the two failure modes. The unknown
		// email never becomes an actor.
		assert.Equal(t, []audit.Action{audit.ActionLoginFailBadPassword}, h.actions(testEmail))
		assert.Equal(t, []audit.Action{audit.ActionLoginFailUnknownUser}, h.actions(""))
		assert.Empty(t, h.actions("x@y.com"))
	})

	t.Run("unknown email pays the hash comparison cost", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		start := time.Now()
		_, err := h.manager.SubmitPassword(ctx, "x@y.com", testPassword)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, session.ErrInvalidCredentials)
		// Without the decoy comparison the unknown-email branch returns in
		// microseconds, turning response time into a membership oracle.
		assert.Greater(t, elapsed, time.Millisecond)
	})

	t.Run("fifth failure locks the account", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)

		for range 5 {
			_, err := h.manager.SubmitPassword(ctx, testEmail, otherPassword)
			require.ErrorIs(t, err, session.ErrInvalidCredentials)
		}

		// Even the correct password is rejected while locked.
		_, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.ErrorIs(t, err, session.ErrAccountLocked)

		actions := h.actions(testEmail)
		require.Len(t, actions, 6)
		assert.Equal(t, audit.ActionLoginAttemptLocked, actions[0])

		// Lockout window elapsed: login works again and the counter is gone.
		h.advance(15*time.Minute + time.Second)
		sess, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.NoError(t, err)
		assert.Equal(t, session.StatePasswordVerified, sess.State)
	})

	t.Run("successful login resets the failure counter", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)

		for range 4 {
			_, err := h.manager.SubmitPassword(ctx, testEmail, otherPassword)
			require.ErrorIs(t, err, session.ErrInvalidCredentials)
		}

		_, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.NoError(t, err)

		count, _, err := h.lockouts.LockoutState(ctx, testEmail)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("bad password audit carries the attempt count", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)

		_, err := h.manager.SubmitPassword(ctx, testEmail, otherPassword)
		require.ErrorIs(t, err, session.ErrInvalidCredentials)
		_, err = h.manager.SubmitPassword(ctx, testEmail, otherPassword)
		require.ErrorIs(t, err, session.ErrInvalidCredentials)

		events, err := h.auditMem.QueryByActor(ctx, testEmail, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "failed_attempts=2 threshold=5", events[0].Metadata)
		assert.Equal(t, "failed_attempts=1 threshold=5", events[1].Metadata)
	})

	t.Run("concurrent failed attempts are all counted", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)

		var wg sync.WaitGroup
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := h.manager.SubmitPassword(ctx, testEmail, otherPassword)
				assert.ErrorIs(t, err, session.ErrInvalidCredentials)
			}()
		}
		wg.Wait()

		count, _, err := h.lockouts.LockoutState(ctx, testEmail)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestManagerSecondFactor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	pending := func(t *testing.T, h *testHarness) session.Session {
		t.Helper()
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)
		sess, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.NoError(t, err)
		return sess
	}

	t.Run("malformed code rejected without audit noise", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		sess := pending(t, h)
		before := h.auditMem.Len()

		next, err := h.manager.SubmitCode(ctx, sess, "12ab56")
		require.Error(t, err)
		assert.Equal(t, session.StatePasswordVerified, next.State)
		assert.Equal(t, before, h.auditMem.Len())
	})

	t.Run("wrong code stays pending and audits totp_failed", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		sess := pending(t, h)

		next, err := h.manager.SubmitCode(ctx, sess, wrongCode)
		require.ErrorIs(t, err, session.ErrInvalidOTPCode)
		assert.Equal(t, session.StatePasswordVerified, next.State)
		assert.Equal(t, audit.ActionTOTPFailed, h.actions(testEmail)[0])
	})

	t.Run("code outside the state machine is rejected", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		_, err := h.manager.SubmitCode(ctx, session.NewSession(), testCode)
		require.ErrorIs(t, err, session.ErrNotPendingSecondFactor)
	})

	t.Run("cancel discards the pending login", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		sess := pending(t, h)

		next := h.manager.Cancel(sess)
		assert.Equal(t, session.StateAnonymous, next.State)
		assert.Empty(t, next.Email)
		assert.Empty(t, next.TOTPSecret)
	})
}

func TestManagerIdleTimeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	authenticate := func(t *testing.T, h *testHarness) session.Session {
		t.Helper()
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)
		sess, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.NoError(t, err)
		sess, err = h.manager.SubmitCode(ctx, sess, testCode)
		require.NoError(t, err)
		return sess
	}

	t.Run("one second under the limit refreshes", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		sess := authenticate(t, h)

		h.advance(900*time.Second - time.Second)
		next, err := h.manager.Touch(ctx, sess)
		require.NoError(t, err)
		assert.Equal(t, session.StateAuthenticated, next.State)
		assert.Equal(t, *h.current, next.LastActivityAt)
	})

	t.Run("one second over the limit expires", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		sess := authenticate(t, h)

		h.advance(900*time.Second + time.Second)
		next, err := h.manager.Touch(ctx, sess)
		require.ErrorIs(t, err, session.ErrSessionExpired)
		assert.Equal(t, session.StateAnonymous, next.State)
		assert.Empty(t, next.Email)
		assert.Equal(t, audit.ActionSessionTimeout, h.actions(testEmail)[0])
	})

	t.Run("custom idle window", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.Config{IdleSeconds: 300})
		sess := authenticate(t, h)

		h.advance(301 * time.Second)
		_, err := h.manager.Touch(ctx, sess)
		require.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("touch is a no-op outside authenticated", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		sess := session.NewSession()
		next, err := h.manager.Touch(ctx, sess)
		require.NoError(t, err)
		assert.Equal(t, sess.State, next.State)
	})
}

func TestManagerLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	h := newHarness(t, session.DefaultConfig())
	h.seedUser(t, testEmail, testPassword, "", session.RoleUser)

	sess, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
	require.NoError(t, err)
	require.True(t, sess.IsAuthenticated())

	next, err := h.manager.Logout(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, session.StateAnonymous, next.State)
	assert.Empty(t, next.Email)
	assert.Equal(t, audit.ActionLogout, h.actions(testEmail)[0])
}

func TestManagerRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success enrolls a second factor", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		user, err := h.manager.Register(ctx, testEmail, testPassword, session.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, testEmail, user.Email)
		assert.Len(t, user.TOTPSecret, 32)
		assert.NotEqual(t, testPassword, user.PasswordHash)
		assert.Equal(t, []audit.Action{audit.ActionRegister}, h.actions(testEmail))
	})

	t.Run("policy violations reported in order", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		_, err := h.manager.Register(ctx, testEmail, "short", session.RoleUser)
		require.ErrorIs(t, err, credential.ErrPasswordTooShort)

		_, err = h.manager.Register(ctx, testEmail, "alllowercase1!", session.RoleUser)
		require.ErrorIs(t, err, credential.ErrPasswordNoUppercase)
	})

	t.Run("common password rejected", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		_, err := h.manager.Register(ctx, testEmail, "Password123!", session.RoleUser)
		require.ErrorIs(t, err, session.ErrCommonPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		_, err := h.manager.Register(ctx, testEmail, testPassword, session.RoleUser)
		require.NoError(t, err)

		_, err = h.manager.Register(ctx, testEmail, testPassword, session.RoleUser)
		require.ErrorIs(t, err, session.ErrEmailAlreadyExists)
	})

	t.Run("unknown role downgraded to user", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())

		user, err := h.manager.Register(ctx, testEmail, testPassword, session.Role("superuser"))
		require.NoError(t, err)
		assert.Equal(t, session.RoleUser, user.Role)
	})
}

func TestManagerAuditTrail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	login := func(t *testing.T, h *testHarness, email string) session.Session {
		t.Helper()
		sess, err := h.manager.SubmitPassword(ctx, email, testPassword)
		require.NoError(t, err)
		sess, err = h.manager.SubmitCode(ctx, sess, testCode)
		require.NoError(t, err)
		return sess
	}

	t.Run("own trail requires authentication", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)

		_, err := h.manager.AuditTrail(ctx, session.NewSession(), 10)
		require.ErrorIs(t, err, session.ErrUnauthorized)

		// Password-verified is not enough either.
		pending, err := h.manager.SubmitPassword(ctx, testEmail, testPassword)
		require.NoError(t, err)
		_, err = h.manager.AuditTrail(ctx, pending, 10)
		require.ErrorIs(t, err, session.ErrUnauthorized)

		sess, err := h.manager.SubmitCode(ctx, pending, testCode)
		require.NoError(t, err)
		events, err := h.manager.AuditTrail(ctx, sess, 10)
		require.NoError(t, err)
		for _, e := range events {
			assert.Equal(t, testEmail, e.Actor)
		}
	})

	t.Run("global trail requires admin", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, session.DefaultConfig())
		h.seedUser(t, testEmail, testPassword, testSecret, session.RoleUser)
		h.seedUser(t, "alfred@wayne.example", testPassword, testSecret, session.RoleAdmin)

		userSess := login(t, h, testEmail)
		_, err := h.manager.FullAuditTrail(ctx, userSess, 10)
		require.ErrorIs(t, err, session.ErrUnauthorized)

		adminSess := login(t, h, "alfred@wayne.example")
		events, err := h.manager.FullAuditTrail(ctx, adminSess, 100)
		require.NoError(t, err)

		actors := make(map[string]bool)
		for _, e := range events {
			actors[e.Actor] = true
		}
		assert.True(t, actors[testEmail])
		assert.True(t, actors["alfred@wayne.example"])
	})
}
