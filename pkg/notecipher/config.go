package notecipher

import (
	"encoding/base64"
	"errors"
)

// Config carries the process-wide note encryption key. The key is required:
// a vault that cannot encrypt notes must not start.
type Config struct {
	// EncryptionKey is the base64-encoded 32-byte key, generated with
	// cmd/genkey.
	EncryptionKey string `env:"ENCRYPTION_KEY,required"`
}

// NewFromConfig builds a Cipher from loaded configuration. Combined with
// config.MustLoad this makes a missing or malformed key a fatal startup
// error rather than a per-call one.
func NewFromConfig(cfg Config) (*Cipher, error) {
	if cfg.EncryptionKey == "" {
		return nil, ErrKeyNotSet
	}
	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	return New(key)
}
