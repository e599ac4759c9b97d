// Package redis connects the vault to a Redis server for cross-instance
// session parking. Connect retries until the server is ready, and
// Healthcheck plugs into liveness probes. Configuration comes from the
// environment via the Config struct.
package redis
