package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load populates the provided configuration struct from environment
// variables. A .env file in the working directory is loaded once per process
// before the first parse; its absence is not an error.
//
// Example:
//
//	type VaultConfig struct {
//		EncryptionKey string `env:"ENCRYPTION_KEY,required"`
//		IdleSeconds   int    `env:"SESSION_IDLE_SECONDS" envDefault:"900"`
//	}
//
//	var cfg VaultConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	defaultEnvLoaded.Do(func() {
		// The .env file is optional; real environments set variables directly.
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use for configuration the process cannot start without, such as the
// note encryption key.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
