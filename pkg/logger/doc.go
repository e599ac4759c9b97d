// Package logger provides a small factory around log/slog with environment
// presets and attribute helpers shared across the module.
//
// The security flow never logs secrets or password material; the helpers here
// exist so that operational events (for example swallowed audit-append
// failures) are reported with consistent keys.
package logger
