package audit

import "errors"

var (
	// ErrStorageNotAvailable indicates the storage backend is unavailable
	ErrStorageNotAvailable = errors.New("audit storage backend is unavailable")

	// ErrEventValidation indicates event validation failed
	ErrEventValidation = errors.New("audit event validation failed")
)
