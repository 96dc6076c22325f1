package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/freshwatch/pkg/config"
)

// Each test uses its own struct type: the loader caches per type for the
// whole process, so sharing a type across tests would leak state.

func TestLoad_ParsesEnvTags(t *testing.T) {
	type storeConfig struct {
		Backend string `env:"TEST_STORE_BACKEND" envDefault:"memory"`
		Prefix  string `env:"TEST_STORE_PREFIX" envDefault:"freshwatch"`
	}

	t.Setenv("TEST_STORE_BACKEND", "redis")

	var cfg storeConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "freshwatch", cfg.Prefix)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:""`
	}

	t.Setenv("TEST_CACHED_VALUE", "first")
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	require.Equal(t, "first", first.Value)

	// A later load of the same type returns the cached copy, not a re-read
	// of the environment.
	t.Setenv("TEST_CACHED_VALUE", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	type nilConfig struct {
		Value string `env:"TEST_NIL_VALUE"`
	}

	var cfg *nilConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type requiredConfig struct {
		Token string `env:"TEST_REQUIRED_TOKEN,required"`
	}

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	// The failed type never entered the cache; retries report that.
	var again requiredConfig
	assert.ErrorIs(t, config.Load(&again), config.ErrConfigNotLoaded)
}
