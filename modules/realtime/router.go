package realtime

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/rentadmin/handler"
)

// RouterOptions configures which endpoints the module mounts.
// Each handler is optional and is only mounted if provided.
type RouterOptions struct {
	Stream *StreamHandler
	Events *EventsHandler
	Inbox  *InboxHandler
}

// Router creates the real-time module router. The principal middleware must
// run before it. /stream and /events accept anonymous callers; the inbox
// answers 401 without an identified principal.
//
//	r := chi.NewRouter()
//	r.Use(principal.Middleware(resolver, log))
//	r.Mount("/", realtime.Router(realtime.RouterOptions{...}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Events != nil {
		r.Post("/events", opts.Events.ServeHTTP)
	}
	if opts.Stream != nil {
		r.Get("/stream", opts.Stream.ServeHTTP)
	}
	if opts.Inbox != nil {
		r.Get("/notifications", opts.Inbox.List)
		r.Get("/notifications/unread", opts.Inbox.Unread)
		r.Post("/notifications/read", opts.Inbox.MarkRead)
	}

	return r
}

// wrap adapts a typed handler with the module's JSON error responses.
func wrap[R any](h handler.HandlerFunc[handler.Context, R], log *slog.Logger, binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](handler.JSONErrorHandler(log)),
	)
}
