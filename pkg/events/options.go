package events

import (
	"context"
	"log/slog"
	"time"
)

// Option configures Logger behavior during initialization.
type Option func(*Logger)

// WithLogger sets the slog logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(lg *Logger) {
		if l != nil {
			lg.logger = l
		}
	}
}

// WithTimeout bounds each storage write. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(l *Logger) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithAsync moves each write to a tracked goroutine. Call Close on shutdown.
func WithAsync() Option {
	return func(l *Logger) {
		l.async = true
	}
}

// WithClock overrides the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// Context extractors fill event fields the caller left empty.

func WithUserIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.userIDExtractor = fn
	}
}

func WithRequestIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.requestIDExtractor = fn
	}
}

func WithIPExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.ipExtractor = fn
	}
}

func WithUserAgentExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.userAgentExtractor = fn
	}
}
