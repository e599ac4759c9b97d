// Package otp implements the time-based one-time password second factor
// (RFC 6238 over RFC 4226 HOTP): secret generation, windowed code validation
// with ±1 time-step clock-skew tolerance, and otpauth:// provisioning URIs.
//
// Secrets are 160-bit, Base32-encoded without padding. Validation never
// panics on malformed input; a non-6-digit submission fails with
// ErrInvalidCode.
package otp
