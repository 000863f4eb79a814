package events

import "time"

// Config holds event logger settings loaded from the environment.
type Config struct {
	Timeout         time.Duration `env:"EVENTS_STORE_TIMEOUT" envDefault:"3s"`
	Async           bool          `env:"EVENTS_ASYNC" envDefault:"true"`
	Collection      string        `env:"EVENTS_COLLECTION" envDefault:"events"`
	OpenSearchIndex string        `env:"EVENTS_OPENSEARCH_INDEX" envDefault:"events"`
}

// Options converts the config into logger options.
func (c Config) Options() []Option {
	opts := []Option{WithTimeout(c.Timeout)}
	if c.Async {
		opts = append(opts, WithAsync())
	}
	return opts
}
