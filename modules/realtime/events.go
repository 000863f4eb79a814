package realtime

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rentadmin/handler"
	"github.com/dmitrymomot/rentadmin/pkg/binder"
	"github.com/dmitrymomot/rentadmin/pkg/clientip"
	"github.com/dmitrymomot/rentadmin/pkg/events"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
	"github.com/dmitrymomot/rentadmin/pkg/principal"
	"github.com/dmitrymomot/rentadmin/pkg/ratelimiter"
	"github.com/dmitrymomot/rentadmin/pkg/requestid"
)

// maxEventBody caps telemetry payloads.
const maxEventBody = 64 << 10

// EventLogger records telemetry. *events.Logger satisfies it.
type EventLogger interface {
	LogEvent(ctx context.Context, in events.Input)
}

// EventsHandler serves POST /events, the client-side telemetry boundary.
// It acknowledges every request: telemetry must never surface errors to the UI.
type EventsHandler struct {
	events  EventLogger
	logger  *slog.Logger
	limiter ratelimiter.Limiter
	serve   http.HandlerFunc
}

// EventsOption configures an EventsHandler.
type EventsOption func(*EventsHandler)

// WithRateLimit drops events from clients over the limit, keyed by client IP.
// Dropped events are still acknowledged.
func WithRateLimit(l ratelimiter.Limiter) EventsOption {
	return func(h *EventsHandler) { h.limiter = l }
}

// NewEventsHandler creates the telemetry endpoint.
func NewEventsHandler(el EventLogger, log *slog.Logger, opts ...EventsOption) *EventsHandler {
	if log == nil {
		log = slog.Default()
	}
	h := &EventsHandler{events: el, logger: log}
	for _, opt := range opts {
		opt(h)
	}
	h.serve = handler.Wrap[handler.Context, eventRequest](h.ingest,
		handler.WithBinders[handler.Context, eventRequest](binder.LimitedJSON(maxEventBody)),
		handler.WithErrorHandler[handler.Context, eventRequest](h.reject),
	)
	return h
}

type eventRequest struct {
	Type    string         `json:"type"`
	UID     string         `json:"uid,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// ack is the answer to every telemetry request.
type ack struct{}

func (ack) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := io.WriteString(w, `{"ok":true}`+"\n")
	return err
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r)
}

func (h *EventsHandler) ingest(ctx handler.Context, req eventRequest) handler.Response {
	r := ctx.Request()
	in := events.Input{
		Type:      req.Type,
		UID:       req.UID,
		Context:   req.Context,
		IP:        clientip.GetIPFromContext(ctx),
		UserAgent: r.UserAgent(),
		RequestID: requestid.FromContext(ctx),
	}
	in.UserID, _ = principal.UserID(ctx)
	if in.IP == "" {
		in.IP = clientip.GetIP(r)
	}
	if !h.allow(ctx, in.IP) {
		h.logger.DebugContext(ctx, "telemetry rate limited", logger.EventType(in.Type))
		return ack{}
	}

	h.events.LogEvent(ctx, in)
	return ack{}
}

// reject acknowledges bodies the binder refused.
func (h *EventsHandler) reject(ctx handler.Context, err error) {
	h.logger.DebugContext(ctx, "telemetry body rejected", logger.Error(err))
	if err := (ack{}).Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		h.logger.DebugContext(ctx, "telemetry ack not written", logger.Error(err))
	}
}

// allow fails open: a limiter error never costs an event.
func (h *EventsHandler) allow(ctx context.Context, key string) bool {
	if h.limiter == nil {
		return true
	}
	res, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "telemetry rate limiter failed", logger.Error(err))
		return true
	}
	return res.Allowed()
}
