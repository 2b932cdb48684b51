package storage_test

import (
	"testing"

	"pkg.world.dev/tablestore/assert"
	"pkg.world.dev/tablestore/storage"
)

func TestGetConfigDefaults(t *testing.T) {
	cfg := storage.GetConfig()
	assert.Equal(t, cfg.TablestoreLogLevel, "info")
	assert.Equal(t, cfg.TablestoreInitialCapacity, 256)
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("TABLESTORE_LOG_LEVEL", "debug")
	t.Setenv("TABLESTORE_INITIAL_CAPACITY", "16")

	cfg := storage.GetConfig()
	assert.Equal(t, cfg.TablestoreLogLevel, "debug")
	assert.Equal(t, cfg.TablestoreInitialCapacity, 16)
}

func TestGetConfigClampsNegativeCapacity(t *testing.T) {
	t.Setenv("TABLESTORE_INITIAL_CAPACITY", "-5")

	cfg := storage.GetConfig()
	assert.Equal(t, cfg.TablestoreInitialCapacity, 0)
}
