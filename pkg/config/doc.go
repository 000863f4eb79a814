// Package config loads environment-driven configuration structs.
//
// Structs declare their variables with caarlos0/env tags; a .env file in the
// working directory is read once before the first load:
//
//	type Config struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Load caches the parsed value per type, so packages can load their own
// Config independently and get the same result. Parse skips the cache.
package config
