package ledger

import "errors"

var (
	ErrInvalidType      = errors.New("transaction type must be income or expense")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrCategoryRequired = errors.New("category is required")
	ErrCategoryTooLong  = errors.New("category exceeds maximum length")
	ErrNoteTooLong      = errors.New("note exceeds maximum length")
	ErrOwnerRequired    = errors.New("owner is required")
)
