// Package session implements the login state machine for the vault:
// password verification with account lockout, a mandatory TOTP second
// factor, idle-timeout expiry, and role-gated access to the audit trail.
//
// A Session is a value in one of three states: anonymous, password-verified
// (awaiting the second factor), or authenticated. Manager methods take the
// current session and return the next one; the caller owns the session's
// lifecycle and may park it in a Store between requests. Identity and role
// carried by a session are only authoritative in the authenticated state,
// and every privileged operation re-checks state and role at call time.
//
// Unknown-email and wrong-password failures are indistinguishable to the
// caller: both return ErrInvalidCredentials with the same message. Every
// transition that matters for security is recorded through the audit logger.
package session
