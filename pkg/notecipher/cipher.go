package notecipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size of the supplied encryption key (AES-256).
	KeySize = 32

	// keyInfo provides domain separation for the HKDF-derived subkey, so the
	// process key can never be reused verbatim by another subsystem.
	keyInfo = "vaultkit-notecipher-v1"
)

// Cipher performs authenticated encryption of transaction notes under a
// single process-wide key supplied at startup. Encryption and decryption are
// pure and safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// New creates a Cipher from a raw 32-byte key. The key is not used directly;
// an AES-256 subkey is derived with HKDF-SHA256.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	subkey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(keyInfo)), subkey); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	block, err := aes.NewCipher(subkey)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt encrypts a free-text note and returns the base64-encoded
// ciphertext in the format nonce + encrypted data + tag. An empty note is
// returned as the empty string, the storage sentinel for "no note"; it is
// never encrypted.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a stored note ciphertext into a tri-state Note. It never
// returns a raised failure to render paths: a malformed, truncated, or
// tampered ciphertext yields an unreadable Note alongside ErrDecryptionFailed
// so callers can show a placeholder while still observing the cause.
func (c *Cipher) Decrypt(ciphertext string) (Note, error) {
	if ciphertext == "" {
		return Note{Kind: NoteEmpty}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return Note{Kind: NoteUnreadable}, errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return Note{Kind: NoteUnreadable}, errors.Join(ErrDecryptionFailed, ErrInvalidCiphertext)
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return Note{Kind: NoteUnreadable}, errors.Join(ErrDecryptionFailed, err)
	}

	return Note{Kind: NotePlaintext, Plaintext: string(plaintext)}, nil
}

// GenerateKey creates a new random 32-byte key suitable for encryption.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrKeyGenerationFailed, err)
	}
	return key, nil
}

// GenerateEncodedKey creates a new key encoded for the ENCRYPTION_KEY
// environment variable.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
