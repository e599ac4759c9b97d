package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role determines what a fully authenticated session may do. There are only
// two roles; everything privileged checks for RoleAdmin at call time.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an identity record. Email is the unique, case-sensitive key.
// PasswordHash is a bcrypt hash with its salt embedded. TOTPSecret is an
// opaque base32 string; an empty secret means the account has no second
// factor enrolled and password verification alone completes the login.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TOTPSecret   string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore abstracts user persistence. Implementations must enforce email
// uniqueness and return ErrEmailAlreadyExists on a duplicate insert.
type UserStore interface {
	// FindUserByEmail returns the user with the given email, or
	// ErrUserNotFound when no such account exists.
	FindUserByEmail(ctx context.Context, email string) (User, error)

	// CreateUser persists a new user. Returns ErrEmailAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, user User) error
}
