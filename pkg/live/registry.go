package live

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/rentadmin/pkg/besteffort"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
)

const defaultEmitTimeout = 2 * time.Second

type entry[T any] struct {
	id   uint64
	conn Connection[T]
}

// Registry is a concurrency-safe set of live connections.
// Register and unregister take the write lock; Broadcast copies a snapshot under the
// read lock and emits outside of it.
type Registry[T any] struct {
	entries     map[uint64]*entry[T]
	nextID      atomic.Uint64
	mode        MatchMode
	emitTimeout time.Duration
	logger      *slog.Logger
	policy      *besteffort.Policy
	closed      bool
	done        chan struct{}
	mu          sync.RWMutex
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	mode        MatchMode
	emitTimeout time.Duration
	logger      *slog.Logger
}

// WithMatchMode sets how subject and role criteria combine. Default is MatchAny.
func WithMatchMode(m MatchMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithEmitTimeout bounds each Emit call. Non-positive values are ignored.
func WithEmitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.emitTimeout = d
		}
	}
}

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an empty, open registry.
func New[T any](opts ...Option) *Registry[T] {
	o := options{
		mode:        MatchAny,
		emitTimeout: defaultEmitTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger.With(logger.Component("live"))

	return &Registry[T]{
		entries:     make(map[uint64]*entry[T]),
		mode:        o.mode,
		emitTimeout: o.emitTimeout,
		logger:      log,
		// Delivery failures are expected (closed tabs, flaky networks) and only
		// interesting while debugging.
		policy: besteffort.New("live", besteffort.WithLogger(log), besteffort.WithLevel(slog.LevelDebug)),
		done:   make(chan struct{}),
	}
}

// Register adds conn to the live set and returns its single-use deregistration handle.
// Calling the handle more than once is a no-op.
func (r *Registry[T]) Register(conn Connection[T]) (func(), error) {
	if conn.Emitter == nil {
		return nil, ErrNilEmitter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	e := &entry[T]{id: r.nextID.Add(1), conn: conn}
	r.entries[e.id] = e

	r.logger.Debug("connection registered",
		logger.ConnectionID(e.id),
		logger.UserID(conn.SubjectID),
		logger.Role(conn.AudienceRole),
		slog.Int("live_connections", len(r.entries)),
	)

	var once sync.Once
	return func() {
		once.Do(func() { r.unregister(e.id) })
	}, nil
}

func (r *Registry[T]) unregister(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)

	r.logger.Debug("connection unregistered",
		logger.ConnectionID(id),
		slog.Int("live_connections", len(r.entries)),
	)
}

// Broadcast delivers msg to every connection currently matching c and returns the
// number of successful emits. Emits run concurrently, each bounded by the emit
// timeout; Broadcast returns once all of them finished, so successive broadcasts
// reach a given connection in call order. Failures never surface to the caller.
func (r *Registry[T]) Broadcast(ctx context.Context, c Criteria, msg T) int {
	targets := r.snapshot(c)
	if len(targets) == 0 {
		return 0
	}

	var (
		delivered atomic.Int64
		wg        sync.WaitGroup
	)
	for _, e := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.emit(ctx, e, msg) {
				delivered.Add(1)
			}
		}()
	}
	wg.Wait()

	return int(delivered.Load())
}

func (r *Registry[T]) emit(ctx context.Context, e *entry[T], msg T) bool {
	ctx, cancel := context.WithTimeout(ctx, r.emitTimeout)
	defer cancel()

	return r.policy.Do(ctx, "emit", func(ctx context.Context) error {
		return e.conn.Emitter.Emit(ctx, msg)
	})
}

// snapshot returns the matching entries at call time.
func (r *Registry[T]) snapshot(c Criteria) []*entry[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]*entry[T], 0, len(r.entries))
	for _, e := range r.entries {
		if r.mode.Matches(c, e.conn.SubjectID, e.conn.AudienceRole) {
			targets = append(targets, e)
		}
	}
	return targets
}

// Len returns the number of registered connections.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Done is closed when the registry shuts down. Stream handlers select on it to end
// their connections; the registry itself never closes a transport.
func (r *Registry[T]) Done() <-chan struct{} {
	return r.done
}

// Stats returns delivery counters.
func (r *Registry[T]) Stats() besteffort.Stats {
	return r.policy.Stats()
}

// Shutdown rejects further registrations and forgets every entry. Safe to call
// multiple times.
func (r *Registry[T]) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	close(r.done)

	r.logger.InfoContext(ctx, "registry shut down", slog.Int("dropped_connections", len(r.entries)))
	clear(r.entries)

	return nil
}
