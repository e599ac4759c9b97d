package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// RecordFailure implements lockout.Store. The increment and the conditional
// lockout assignment run in a single UPDATE; with SQLite's single writer
// this makes concurrent attempts safe. Recording against an email with no
// account is a no-op.
func (s *Storage) RecordFailure(ctx context.Context, email string, threshold int, lockFor time.Duration) (int, *time.Time, error) {
	const query = `
		UPDATE users
		SET failed_attempts = failed_attempts + 1,
		    lockout_until = CASE
		        WHEN failed_attempts + 1 >= ? THEN ?
		        ELSE lockout_until
		    END
		WHERE email = ?
		RETURNING failed_attempts, lockout_until`

	expiry := time.Now().Add(lockFor)

	var (
		count int
		until sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, threshold, expiry, email).Scan(&count, &until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, nil
		}
		return 0, nil, err
	}

	return count, nullableTime(until), nil
}

// LockoutState implements lockout.Store.
func (s *Storage) LockoutState(ctx context.Context, email string) (int, *time.Time, error) {
	const query = `SELECT failed_attempts, lockout_until FROM users WHERE email = ?`

	var (
		count int
		until sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, email).Scan(&count, &until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, nil
		}
		return 0, nil, err
	}

	return count, nullableTime(until), nil
}

// ResetLockout implements lockout.Store.
func (s *Storage) ResetLockout(ctx context.Context, email string) error {
	const query = `
		UPDATE users
		SET failed_attempts = 0, lockout_until = NULL
		WHERE email = ?`

	_, err := s.db.ExecContext(ctx, query, email)
	return err
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
