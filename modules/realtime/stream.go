package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/rentadmin/handler"
	"github.com/dmitrymomot/rentadmin/pkg/live"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
	"github.com/dmitrymomot/rentadmin/pkg/notifications"
	"github.com/dmitrymomot/rentadmin/pkg/principal"
)

// Inbox is the recipient side of the notification store.
// *notifications.Dispatcher satisfies it.
type Inbox interface {
	List(ctx context.Context, r notifications.Recipient, opts notifications.ListOptions) ([]notifications.Notification, error)
	CountUnread(ctx context.Context, r notifications.Recipient) (int, error)
	MarkRead(ctx context.Context, r notifications.Recipient, ids ...string) error
	MarkAllRead(ctx context.Context, r notifications.Recipient) error
}

// StreamHandler serves GET /stream: a datastar SSE stream that pushes every
// notification delivered to the caller's live connection. Requests that do
// not accept text/event-stream get 406.
type StreamHandler struct {
	registry   *live.Registry[notifications.Payload]
	inbox      Inbox
	logger     *slog.Logger
	heartbeat  time.Duration
	bufferSize int
	serve      http.HandlerFunc
}

// StreamOption configures a StreamHandler.
type StreamOption func(*StreamHandler)

// WithHeartbeat sets the interval of keep-alive comments.
func WithHeartbeat(d time.Duration) StreamOption {
	return func(h *StreamHandler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithBufferSize sets how many payloads a slow client may lag behind before
// further pushes are dropped.
func WithBufferSize(n int) StreamOption {
	return func(h *StreamHandler) {
		if n > 0 {
			h.bufferSize = n
		}
	}
}

// WithStreamLogger sets the logger.
func WithStreamLogger(l *slog.Logger) StreamOption {
	return func(h *StreamHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewStreamHandler creates the stream endpoint.
func NewStreamHandler(registry *live.Registry[notifications.Payload], inbox Inbox, opts ...StreamOption) *StreamHandler {
	h := &StreamHandler{
		registry:   registry,
		inbox:      inbox,
		logger:     slog.Default(),
		heartbeat:  15 * time.Second,
		bufferSize: 16,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.serve = wrap[struct{}](h.open, h.logger)
	return h
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)
}

// open registers the caller's live connection. Anonymous callers register with
// no subject and no role, so they only receive broadcasts.
func (h *StreamHandler) open(ctx handler.Context, _ struct{}) handler.Response {
	if !handler.IsDataStar(ctx.Request()) {
		return handler.JSONError(handler.ErrNotAcceptable)
	}

	p, _ := principal.FromContext(ctx)
	stream := live.NewStream[notifications.Payload](h.bufferSize)
	unregister, err := h.registry.Register(live.Connection[notifications.Payload]{
		SubjectID:    p.UserID,
		AudienceRole: p.Role,
		Emitter:      stream,
	})
	if err != nil {
		stream.Close()
		h.logger.WarnContext(ctx, "stream refused", logger.Error(err))
		return handler.JSONError(handler.ErrServiceUnavailable)
	}

	return handler.SSE(func(s handler.StreamContext) error {
		defer stream.Close()
		defer unregister()
		h.pump(s, p, stream)
		return nil
	})
}

// pump forwards delivered payloads until the client leaves or the registry shuts down.
func (h *StreamHandler) pump(s handler.StreamContext, p principal.Principal, stream *live.Stream[notifications.Payload]) {
	log := h.logger.With(logger.UserID(p.UserID), logger.Role(p.Role))
	log.DebugContext(s, "stream opened")
	defer log.DebugContext(s, "stream closed")

	rcpt := notifications.Recipient{UserID: p.UserID, Role: p.Role}
	identified := !p.IsAnonymous()

	unread := 0
	if identified {
		unread = h.countUnread(s, rcpt, 0)
	}
	if err := sendUnread(s, unread); err != nil {
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-s.Done():
			return
		case <-h.registry.Done():
			return
		case <-ticker.C:
			if err := s.Heartbeat(); err != nil {
				return
			}
		case msg := <-stream.Messages():
			if identified {
				unread = h.countUnread(s, rcpt, unread+1)
			}
			if err := sendNotification(s, msg.Notification, unread); err != nil {
				log.DebugContext(s, "stream write failed", logger.Error(err))
				return
			}
		}
	}
}

// countUnread asks the store; when it is unavailable the caller's estimate is used.
func (h *StreamHandler) countUnread(ctx context.Context, r notifications.Recipient, fallback int) int {
	if h.inbox == nil {
		return fallback
	}
	n, err := h.inbox.CountUnread(ctx, r)
	if err != nil {
		h.logger.WarnContext(ctx, "unread count unavailable", logger.Error(err))
		return fallback
	}
	return n
}

func sendUnread(s handler.StreamContext, unread int) error {
	if err := s.SendSignal("unread", unread); err != nil {
		return err
	}
	return s.SendComponent(UnreadBadge(unread))
}

func sendNotification(s handler.StreamContext, n notifications.Notification, unread int) error {
	if err := s.SendSignals(map[string]any{"notification": n, "unread": unread}); err != nil {
		return err
	}
	if err := s.SendComponent(UnreadBadge(unread)); err != nil {
		return err
	}
	return s.SendComponent(Toast(n),
		handler.WithTarget("#"+ToastContainerID),
		handler.WithPatchMode(handler.PatchAppend),
	)
}
