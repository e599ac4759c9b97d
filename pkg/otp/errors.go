package otp

import "errors"

var (
	ErrFailedToGenerateSecretKey = errors.New("failed to generate TOTP secret key")
	ErrMissingSecret             = errors.New("missing secret")
	ErrInvalidSecret             = errors.New("invalid secret")
	ErrMissingAccountName        = errors.New("missing account name")
	ErrMissingIssuer             = errors.New("missing issuer")
	ErrInvalidCode               = errors.New("invalid code format")
)
