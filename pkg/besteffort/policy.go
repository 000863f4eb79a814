package besteffort

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/rentadmin/pkg/logger"
)

// FailureHook is invoked after a failed operation has been logged.
type FailureHook func(ctx context.Context, op string, err error)

// Stats is a point-in-time view of a Policy's counters.
type Stats struct {
	Attempts uint64
	Failures uint64
}

// Policy executes operations whose failures must never reach the caller.
// All methods are safe for concurrent use.
type Policy struct {
	name     string
	logger   *slog.Logger
	level    slog.Level
	onFail   FailureHook
	attempts atomic.Uint64
	failures atomic.Uint64
}

// Option configures a Policy.
type Option func(*Policy)

// WithLogger sets the operational logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Policy) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithLevel sets the level failures are logged at. Defaults to slog.LevelWarn.
func WithLevel(level slog.Level) Option {
	return func(p *Policy) {
		p.level = level
	}
}

// WithFailureHook registers a callback for failed operations, e.g. a metrics counter.
// Panics inside the hook are recovered as well.
func WithFailureHook(h FailureHook) Option {
	return func(p *Policy) {
		p.onFail = h
	}
}

// New creates a Policy. The name is attached to every log record as the component.
func New(name string, opts ...Option) *Policy {
	p := &Policy{
		name:   name,
		logger: slog.Default(),
		level:  slog.LevelWarn,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Do runs fn and reports whether it succeeded. A returned error or a panic is logged,
// counted and swallowed. The boolean is informational; callers are free to ignore it.
func (p *Policy) Do(ctx context.Context, op string, fn func(context.Context) error) (ok bool) {
	p.attempts.Add(1)

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrPanicked, r)
			}
		}()
		err = fn(ctx)
	}()

	if err == nil {
		return true
	}

	p.failures.Add(1)
	p.logger.LogAttrs(ctx, p.level, "best-effort operation failed",
		logger.Component(p.name),
		slog.String("operation", op),
		logger.Error(err),
	)

	if p.onFail != nil {
		func() {
			defer func() { _ = recover() }()
			p.onFail(ctx, op, err)
		}()
	}

	return false
}

// Stats returns the policy's counters.
func (p *Policy) Stats() Stats {
	return Stats{
		Attempts: p.attempts.Load(),
		Failures: p.failures.Load(),
	}
}

// Name returns the component name of the policy.
func (p *Policy) Name() string {
	return p.name
}
