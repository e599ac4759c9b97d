// Package audit records security-relevant events to an append-only trail.
//
// The design trades auditability for availability: Logger.Log never fails the
// operation being audited. When the storage backend rejects an append, the
// record is dropped and the failure is reported through the operational slog
// channel only. Readers return events newest first, per actor or globally;
// the global view is restricted to administrators by the session manager,
// not by this package.
//
// The action vocabulary is fixed (see Action constants) and unknown actions
// are dropped at append time.
package audit
