// Package lockout implements the brute-force protection policy: a
// per-account failed-attempt counter that locks the account for a fixed
// window once a threshold is reached.
//
// The increment and the lockout assignment are one atomic store operation,
// so concurrent failed attempts against the same account are all counted.
// Lockouts self-heal lazily: the expired state is cleared on the next
// IsLocked check rather than by a background job.
package lockout
