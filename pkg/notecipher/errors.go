package notecipher

import "errors"

var (
	ErrKeyNotSet           = errors.New("note encryption key not set, use ENCRYPTION_KEY env var")
	ErrInvalidKey          = errors.New("invalid encryption key: must be 32 bytes")
	ErrKeyDerivationFailed = errors.New("key derivation failed")
	ErrKeyGenerationFailed = errors.New("failed to generate encryption key")
	ErrEncryptionFailed    = errors.New("encryption failed")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrInvalidCiphertext   = errors.New("invalid ciphertext format")
)
