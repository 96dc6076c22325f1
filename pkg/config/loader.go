package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]any)
	onces   = make(map[string]*sync.Once)

	dotenvOnce sync.Once
)

// Load parses environment variables into v based on `env` field tags. A
// .env file in the working directory is loaded into the process environment
// first when one exists.
//
// Each unique struct type is parsed exactly once per process and cached;
// later calls for the same type receive the cached copy. The engine's
// storage configs rely on this: the host and the store backend can both
// load kvstore.RedisConfig and observe one consistent value.
//
//	var cfg kvstore.RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is fine, the process env still applies.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	name := typeName[T]()

	cacheMu.RLock()
	cached, ok := cache[name]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	cacheMu.Lock()
	once, ok := onces[name]
	if !ok {
		once = new(sync.Once)
		onces[name] = once
	}
	cacheMu.Unlock()

	var parseErr error
	once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		cacheMu.Lock()
		cache[name] = *v // cache a copy, callers may mutate theirs
		cacheMu.Unlock()
	})
	if parseErr != nil {
		return parseErr
	}

	cacheMu.RLock()
	cached, ok = cache[name]
	cacheMu.RUnlock()
	if !ok {
		// The once ran on an earlier call and failed; this type never made
		// it into the cache.
		return ErrConfigNotLoaded
	}
	*v = cached.(T)
	return nil
}

// typeName returns a stable identifier for T, used as the cache key.
func typeName[T any]() string {
	var zero T
	if t := reflect.TypeOf(zero); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}
