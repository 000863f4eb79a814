package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cacheMu sync.Mutex
	cache   = map[reflect.Type]*entry{}

	envFilesOnce sync.Once
)

// LoadEnvFiles reads dotenv files into the process environment. Only the first
// call has an effect; variables already set win. No paths means ".env".
// Missing files are ignored.
func LoadEnvFiles(paths ...string) {
	envFilesOnce.Do(func() {
		if len(paths) == 0 {
			paths = []string{".env"}
		}
		for _, p := range paths {
			_ = godotenv.Load(p)
		}
	})
}

// Load parses environment variables into v. The result is cached per type:
// later calls for the same T return the first result even if the environment
// changed in between.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	LoadEnvFiles()

	t := reflect.TypeFor[T]()

	cacheMu.Lock()
	e, ok := cache[t]
	if !ok {
		e = &entry{}
		cache[t] = e
	}
	cacheMu.Unlock()

	e.once.Do(func() {
		e.value, e.err = Parse[T]()
	})
	if e.err != nil {
		return e.err
	}

	*v = e.value.(T)
	return nil
}

// MustLoad is Load that panics on error. Use it at program start only.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse reads T from the environment without caching.
func Parse[T any]() (T, error) {
	var v T
	if err := env.Parse(&v); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}
