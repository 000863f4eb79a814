package live

import "time"

// Config holds registry settings loadable with pkg/config.
type Config struct {
	// EmitTimeout bounds a single Emit call.
	EmitTimeout time.Duration `env:"LIVE_EMIT_TIMEOUT" envDefault:"2s"`
	// StreamBufferSize is the per-connection queue length.
	StreamBufferSize int `env:"LIVE_STREAM_BUFFER_SIZE" envDefault:"16"`
	// MatchMode is "any" (subject OR role) or "all".
	MatchMode string `env:"LIVE_MATCH_MODE" envDefault:"any"`
	// Heartbeat is the keep-alive interval for stream transports.
	Heartbeat time.Duration `env:"LIVE_STREAM_HEARTBEAT" envDefault:"15s"`
}

// Options converts the config into registry options.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 2)
	if c.EmitTimeout > 0 {
		opts = append(opts, WithEmitTimeout(c.EmitTimeout))
	}
	if c.MatchMode == "all" {
		opts = append(opts, WithMatchMode(MatchAll))
	} else {
		opts = append(opts, WithMatchMode(MatchAny))
	}
	return opts
}
