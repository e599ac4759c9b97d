package postgres

import (
	"context"
	"time"
)

// RecordFailure implements lockout.Store. The increment and the conditional
// lockout assignment run in a single UPDATE so concurrent attempts cannot
// lose an update. Recording against an email with no account is a no-op.
func (s *Storage) RecordFailure(ctx context.Context, email string, threshold int, lockFor time.Duration) (int, *time.Time, error) {
	const query = `
		UPDATE users
		SET failed_attempts = failed_attempts + 1,
		    lockout_until = CASE
		        WHEN failed_attempts + 1 >= $2 THEN now() + make_interval(secs => $3)
		        ELSE lockout_until
		    END
		WHERE email = $1
		RETURNING failed_attempts, lockout_until`

	var (
		count int
		until *time.Time
	)
	rows, err := s.pool.Query(ctx, query, email, threshold, lockFor.Seconds())
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, nil, rows.Err()
	}
	if err := rows.Scan(&count, &until); err != nil {
		return 0, nil, err
	}

	return count, until, rows.Err()
}

// LockoutState implements lockout.Store.
func (s *Storage) LockoutState(ctx context.Context, email string) (int, *time.Time, error) {
	const query = `SELECT failed_attempts, lockout_until FROM users WHERE email = $1`

	var (
		count int
		until *time.Time
	)
	rows, err := s.pool.Query(ctx, query, email)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, nil, rows.Err()
	}
	if err := rows.Scan(&count, &until); err != nil {
		return 0, nil, err
	}

	return count, until, rows.Err()
}

// ResetLockout implements lockout.Store.
func (s *Storage) ResetLockout(ctx context.Context, email string) error {
	const query = `
		UPDATE users
		SET failed_attempts = 0, lockout_until = NULL
		WHERE email = $1`

	_, err := s.pool.Exec(ctx, query, email)
	return err
}
