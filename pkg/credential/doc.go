// Package credential implements password policy enforcement and password
// hashing for the vault's credential store.
//
// Hashing uses bcrypt: per-call random salt, embedded in the hash, with a
// configurable work factor. Verification is failure-safe: a malformed stored
// hash is treated as a mismatch, never an error, so a corrupted row cannot
// crash a login attempt.
package credential
