package notifications

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rentadmin/pkg/besteffort"
	"github.com/dmitrymomot/rentadmin/pkg/live"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
)

// Pusher delivers a payload to the live connections matching the criteria.
// *live.Registry[Payload] satisfies it.
type Pusher interface {
	Broadcast(ctx context.Context, c live.Criteria, msg Payload) int
}

type noopPusher struct{}

func (noopPusher) Broadcast(context.Context, live.Criteria, Payload) int { return 0 }

// Dispatcher persists notifications and pushes them to connected clients.
// The store is the source of truth: a failed push is never an error, clients
// pick the record up on their next poll or reconnect.
type Dispatcher struct {
	storage Storage
	pusher  Pusher
	policy  *besteffort.Policy
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for the dispatcher and its push policy.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock overrides the time source used for CreatedAt and read timestamps.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(gen func() string) DispatcherOption {
	return func(d *Dispatcher) {
		if gen != nil {
			d.newID = gen
		}
	}
}

// NewDispatcher creates a dispatcher. A nil pusher disables live delivery.
func NewDispatcher(storage Storage, pusher Pusher, opts ...DispatcherOption) *Dispatcher {
	if storage == nil {
		panic("notifications: storage is required")
	}
	if pusher == nil {
		pusher = noopPusher{}
	}

	d := &Dispatcher{
		storage: storage,
		pusher:  pusher,
		logger:  slog.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.policy = besteffort.New("notifications.push", besteffort.WithLogger(d.logger))

	return d
}

// CreateAndPush validates the input, stores the record and pushes it to every
// matching live connection. Push failures are logged and swallowed.
func (d *Dispatcher) CreateAndPush(ctx context.Context, in Input) (Notification, error) {
	if err := in.Validate(); err != nil {
		return Notification{}, err
	}
	in = in.normalize()

	n := Notification{
		ID:           d.newID(),
		SubjectID:    in.SubjectID,
		AudienceRole: in.Role,
		BookingID:    in.BookingID,
		Type:         in.Type,
		Title:        in.Title,
		Message:      in.Message,
		ActionURL:    in.ActionURL,
		CreatedAt:    d.now().UTC(),
	}

	if err := d.storage.Create(ctx, n); err != nil {
		return Notification{}, errors.Join(ErrPersistence, err)
	}

	d.policy.Do(ctx, "push", func(ctx context.Context) error {
		delivered := d.pusher.Broadcast(ctx, n.Criteria(), NewPayload(n))
		d.logger.DebugContext(ctx, "notification pushed",
			logger.NotificationID(n.ID),
			logger.EventType(string(n.Type)),
			slog.Int("delivered", delivered),
		)
		return nil
	})

	return n, nil
}

// List returns notifications visible to the recipient, newest first.
func (d *Dispatcher) List(ctx context.Context, r Recipient, opts ListOptions) ([]Notification, error) {
	return d.storage.List(ctx, r, opts)
}

// CountUnread returns the number of unread notifications visible to the recipient.
func (d *Dispatcher) CountUnread(ctx context.Context, r Recipient) (int, error) {
	return d.storage.CountUnread(ctx, r)
}

// MarkRead marks the given notifications read. Empty ids is a no-op; use MarkAllRead
// to clear everything.
func (d *Dispatcher) MarkRead(ctx context.Context, r Recipient, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return d.storage.MarkRead(ctx, r, ids...)
}

// MarkAllRead marks every unread notification addressed to the recipient's user id.
// Role and broadcast notifications share one read flag across users, so they are
// left for MarkRead with explicit ids.
func (d *Dispatcher) MarkAllRead(ctx context.Context, r Recipient) error {
	return d.storage.MarkRead(ctx, r)
}

// PushStats reports attempts and swallowed failures of live delivery.
func (d *Dispatcher) PushStats() besteffort.Stats {
	return d.policy.Stats()
}
