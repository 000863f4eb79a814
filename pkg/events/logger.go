package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rentadmin/pkg/besteffort"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
)

// DefaultTimeout bounds a single storage write.
const DefaultTimeout = 3 * time.Second

// contextExtractor extracts string values from context.
// It returns (value, found) where found indicates if extraction succeeded.
type contextExtractor func(context.Context) (string, bool)

// Logger records user actions without ever failing or blocking the caller on
// storage problems. Failures are logged and counted, never returned.
type Logger struct {
	storage Storage
	policy  *besteffort.Policy
	logger  *slog.Logger
	timeout time.Duration
	async   bool
	now     func() time.Time

	userIDExtractor    contextExtractor
	requestIDExtractor contextExtractor
	ipExtractor        contextExtractor
	userAgentExtractor contextExtractor

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed atomic.Bool
}

// NewLogger creates an event logger on top of storage.
func NewLogger(storage Storage, opts ...Option) *Logger {
	if storage == nil {
		panic("events: storage cannot be nil")
	}

	l := &Logger{
		storage: storage,
		logger:  slog.Default(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.policy = besteffort.New("events", besteffort.WithLogger(l.logger))

	return l
}

// LogEvent records an action. It never returns an error: a missing type is
// logged and dropped, storage failures are logged and counted. The write is
// detached from ctx cancellation and bounded by the logger's timeout.
func (l *Logger) LogEvent(ctx context.Context, in Input) {
	event, ok := l.build(ctx, in)
	if !ok {
		return
	}

	if !l.async {
		l.store(ctx, event)
		return
	}

	// Registration and Close's Wait must not race.
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed.Load() {
		l.logger.WarnContext(ctx, "event dropped", logger.EventType(event.Type), logger.Error(ErrLoggerClosed))
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.store(ctx, event)
	}()
}

func (l *Logger) build(ctx context.Context, in Input) (Event, bool) {
	in = in.normalize()
	if in.Type == "" {
		l.logger.WarnContext(ctx, "event dropped", logger.Error(ErrMissingType))
		return Event{}, false
	}

	event := Event{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		UID:       in.UID,
		Type:      in.Type,
		Context:   in.Context,
		IP:        in.IP,
		UserAgent: in.UserAgent,
		RequestID: in.RequestID,
		CreatedAt: l.now().UTC(),
	}

	fill(ctx, &event.UserID, l.userIDExtractor)
	fill(ctx, &event.RequestID, l.requestIDExtractor)
	fill(ctx, &event.IP, l.ipExtractor)
	fill(ctx, &event.UserAgent, l.userAgentExtractor)

	return event, true
}

func (l *Logger) store(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	l.policy.Do(ctx, "store "+event.Type, func(ctx context.Context) error {
		return l.storage.Store(ctx, event)
	})
}

// Close stops accepting asynchronous writes and waits for in-flight ones.
// The context bounds the wait.
func (l *Logger) Close(ctx context.Context) error {
	l.mu.Lock()
	l.closed.Store(true)
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats reports attempted and failed writes.
func (l *Logger) Stats() besteffort.Stats {
	return l.policy.Stats()
}

// fill sets *dst from the extractor when the caller left it empty.
func fill(ctx context.Context, dst *string, fn contextExtractor) {
	if *dst != "" || fn == nil {
		return
	}
	if v, ok := fn(ctx); ok {
		*dst = v
	}
}
