package lockout

import (
	"context"
	"time"
)

// Store persists per-account failure counters and lockout expiries.
//
// RecordFailure must be atomic per account: the increment and the conditional
// lockout assignment happen as one step (a single UPDATE or an equivalent
// compare-and-set), so concurrent failed attempts can never lose an update.
type Store interface {
	// RecordFailure increments the account's failed-attempt counter. When
	// the updated count reaches threshold, the store sets the lockout expiry
	// to now + lockFor within the same atomic step. Returns the new count
	// and the lockout expiry, nil if the account is not locked.
	RecordFailure(ctx context.Context, email string, threshold int, lockFor time.Duration) (int, *time.Time, error)

	// LockoutState returns the current counter and expiry, nil when unlocked.
	LockoutState(ctx context.Context, email string) (int, *time.Time, error)

	// ResetLockout zeroes the counter and clears the expiry.
	ResetLockout(ctx context.Context, email string) error
}
