package credential

import "errors"

// Policy violations, one per rule, in the order PolicyCheck applies them.
var (
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUppercase   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLowercase   = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoDigit       = errors.New("password must contain at least one number")
	ErrPasswordNoSpecialChar = errors.New("password must contain at least one special character (!@#$%^&*)")
)

var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrHashingFailed = errors.New("failed to hash password")
)
