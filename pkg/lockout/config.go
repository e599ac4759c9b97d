package lockout

import "time"

// Config holds lockout policy configuration. The original deployments of
// this system disagreed on the lockout duration (5 vs 15 minutes); 15 minutes
// is the documented default here and either is reachable through the
// environment.
type Config struct {
	// Threshold is the number of consecutive failed attempts that locks the
	// account.
	Threshold int `env:"LOCKOUT_THRESHOLD" envDefault:"5"`

	// DurationSeconds is the lockout window length in seconds.
	DurationSeconds int `env:"LOCKOUT_DURATION_SECONDS" envDefault:"900"`
}

// DefaultConfig returns the canonical policy: 5 attempts, 15 minutes.
func DefaultConfig() Config {
	return Config{
		Threshold:       5,
		DurationSeconds: 900,
	}
}

// Duration returns the lockout window as a time.Duration.
func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}
