package storage

import (
	jlconfig "github.com/JeremyLoy/config"
)

// Config holds the engine defaults that can be overridden from the
// environment. Fields map to snake-cased env variables (TABLESTORE_LOG_LEVEL
// and so on); explicit Options passed to NewEngine win over both.
type Config struct {
	TablestoreLogLevel        string
	TablestoreInitialCapacity int
}

// GetConfig loads the engine configuration from the environment, falling
// back to the built-in defaults for anything unset.
func GetConfig() Config {
	cfg := Config{
		TablestoreLogLevel:        "info",
		TablestoreInitialCapacity: 256,
	}
	// Env loading never hard-fails the engine; a malformed variable just
	// leaves the default in place.
	_ = jlconfig.FromEnv().To(&cfg)
	if cfg.TablestoreInitialCapacity < 0 {
		cfg.TablestoreInitialCapacity = 0
	}
	return cfg
}
