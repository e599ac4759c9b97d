package credential

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// Hash derives a salted, deliberately slow one-way hash of the password using
// bcrypt with the default cost. The salt is generated per call and embedded
// in the returned hash.
func Hash(password string) (string, error) {
	return HashWithCost(password, DefaultCost)
}

// HashWithCost is Hash with an explicit bcrypt cost. Costs outside the bcrypt
// range are rejected by the underlying implementation.
func HashWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the stored hash. The comparison
// is constant-time within bcrypt. Malformed or foreign stored hashes never
// cause an error; they simply fail verification.
func Verify(password, storedHash string) bool {
	if password == "" || storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// decoyHash is a syntactically valid bcrypt digest at the default cost that
// corresponds to no password.
const decoyHash = "$2a$10$CoYfW53W6weQQ4krz.O4Tez72H18FQ0nIP5j9zZyylkJQV7awmd3."

// VerifyDecoy runs a bcrypt comparison against a throwaway hash and always
// reports a mismatch. Failure paths that have no stored hash to compare
// against, such as a login attempt for an unknown account, call it so their
// response time matches a real Verify.
func VerifyDecoy(password string) bool {
	_ = bcrypt.CompareHashAndPassword([]byte(decoyHash), []byte(password))
	return false
}
