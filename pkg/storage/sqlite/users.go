package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vaultkit/vaultkit/pkg/session"
)

// FindUserByEmail implements session.UserStore.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (session.User, error) {
	const query = `
		SELECT id, email, password_hash, totp_secret, role, created_at
		FROM users
		WHERE email = ?`

	var user session.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.TOTPSecret,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.TOTPSecret,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return errors.Join(session.ErrEmailAlreadyExists, err)
		}
		return err
	}

	return nil
}
