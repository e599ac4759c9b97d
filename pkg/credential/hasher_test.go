package credential_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaultkit/vaultkit/pkg/credential"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		hash, err := credential.HashWithCost("Str0ng!pass", bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, "Str0ng!pass", hash)
		assert.True(t, credential.Verify("Str0ng!pass", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()
		hash, err := credential.HashWithCost("Str0ng!pass", bcrypt.MinCost)
		require.NoError(t, err)
		assert.False(t, credential.Verify("Wr0ng!pass", hash))
	})

	t.Run("salted per call", func(t *testing.T) {
		t.Parallel()
		first, err := credential.HashWithCost("Str0ng!pass", bcrypt.MinCost)
		require.NoError(t, err)
		second, err := credential.HashWithCost("Str0ng!pass", bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		t.Parallel()
		_, err := credential.Hash("")
		assert.ErrorIs(t, err, credential.ErrEmptyPassword)
	})
}

func TestVerifyDecoy(t *testing.T) {
	t.Parallel()

	t.Run("always mismatches", func(t *testing.T) {
		t.Parallel()
		for _, password := range []string{"", "Str0ng!pass", "password", "decoy"} {
			assert.False(t, credential.VerifyDecoy(password), "password=%q", password)
		}
	})

	t.Run("pays full hashing cost", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		credential.VerifyDecoy("Str0ng!pass")
		// Default-cost bcrypt takes tens of milliseconds on any hardware;
		// a sub-millisecond return means no comparison happened.
		assert.Greater(t, time.Since(start), time.Millisecond)
	})
}

// Verify must never panic or error on garbage stored hashes; a corrupted row
// reads as a failed login, not a crash.
func TestVerifyMalformedHash(t *testing.T) {
	t.Parallel()

	for _, stored := range []string{
		"",
		"not-a-bcrypt-hash",
		"$2a$10$tooshort",
		"c29tZSBiYXNlNjQgYmxvYg==",
	} {
		assert.False(t, credential.Verify("Str0ng!pass", stored), "stored=%q", stored)
	}
}
