package postgres

import (
	"context"
	"errors"

	"github.com/vaultkit/vaultkit/pkg/pg"
	"github.com/vaultkit/vaultkit/pkg/session"
)

// FindUserByEmail implements session.UserStore.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (session.User, error) {
	const query = `
		SELECT id, email, password_hash, totp_secret, role, created_at
		FROM users
		WHERE email = $1`

	var user session.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.TOTPSecret,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return session.User{}, session.ErrUserNotFound
		}
		return session.User{}, err
	}

	return user, nil
}

// CreateUser implements session.UserStore.
func (s *Storage) CreateUser(ctx context.Context, user session.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, totp_secret, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.TOTPSecret,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return errors.Join(session.ErrEmailAlreadyExists, err)
		}
		return err
	}

	return nil
}
