package lockout

import (
	"context"
	"time"
)

// Policy tracks failed login attempts per account and computes lockout
// windows. The counter and expiry live in the Store; the policy only applies
// the threshold and duration rules around it.
type Policy struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// Option configures a Policy.
type Option func(*Policy)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a lockout policy backed by the given store.
func New(store Store, cfg Config, opts ...Option) *Policy {
	if store == nil {
		panic("lockout: store cannot be nil")
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	if cfg.DurationSeconds <= 0 {
		cfg.DurationSeconds = DefaultConfig().DurationSeconds
	}

	p := &Policy{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Threshold returns the configured failure threshold.
func (p *Policy) Threshold() int {
	return p.cfg.Threshold
}

// RecordFailure registers one failed attempt and returns the new count.
// Reaching the threshold locks the account for the configured duration as
// part of the same atomic store update.
func (p *Policy) RecordFailure(ctx context.Context, email string) (int, error) {
	count, _, err := p.store.RecordFailure(ctx, email, p.cfg.Threshold, p.cfg.Duration())
	return count, err
}

// IsLocked reports whether the account currently rejects all login attempts.
// An expired lockout is cleared here (counter zeroed, expiry removed), which
// is the only place lockout state self-heals.
func (p *Policy) IsLocked(ctx context.Context, email string) (bool, error) {
	_, until, err := p.store.LockoutState(ctx, email)
	if err != nil {
		return false, err
	}
	if until == nil {
		return false, nil
	}
	if p.now().Before(*until) {
		return true, nil
	}
	// Lockout window elapsed: self-heal.
	if err := p.store.ResetLockout(ctx, email); err != nil {
		return false, err
	}
	return false, nil
}

// Reset unconditionally zeroes the counter and clears the expiry. Called on
// fully successful authentication.
func (p *Policy) Reset(ctx context.Context, email string) error {
	return p.store.ResetLockout(ctx, email)
}
