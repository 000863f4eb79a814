package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines the token bucket shape.
type Config struct {
	// Capacity is the burst size.
	Capacity int `env:"EVENTS_RATE_CAPACITY" envDefault:"120"`
	// RefillRate is the number of tokens added every RefillInterval.
	RefillRate int `env:"EVENTS_RATE_REFILL" envDefault:"2"`
	// RefillInterval is how often RefillRate tokens are added.
	RefillInterval time.Duration `env:"EVENTS_RATE_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}
