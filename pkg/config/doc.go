// Package config provides type-safe environment configuration loading.
//
// Load parses environment variables into a struct based on `env` field
// tags, loading a default .env file first when one exists. Each unique
// configuration type is parsed once per process and cached; subsequent
// loads of the same type return the cached value.
//
//	type StorageConfig struct {
//	    Backend  string `env:"FRESHWATCH_STORE" envDefault:"memory"`
//	    RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
package config
