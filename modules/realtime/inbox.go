package realtime

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rentadmin/handler"
	"github.com/dmitrymomot/rentadmin/pkg/binder"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
	"github.com/dmitrymomot/rentadmin/pkg/notifications"
	"github.com/dmitrymomot/rentadmin/pkg/principal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// InboxHandler serves the notification list and read-state endpoints.
type InboxHandler struct {
	inbox  Inbox
	logger *slog.Logger

	list     http.HandlerFunc
	unread   http.HandlerFunc
	markRead http.HandlerFunc
}

// NewInboxHandler creates the inbox endpoints.
func NewInboxHandler(inbox Inbox, log *slog.Logger) *InboxHandler {
	if log == nil {
		log = slog.Default()
	}
	h := &InboxHandler{inbox: inbox, logger: log}
	h.list = wrap[ListRequest](h.listNotifications, log, binder.Query())
	h.unread = wrap[struct{}](h.unreadCount, log)
	h.markRead = wrap[MarkReadRequest](h.markNotificationsRead, log, binder.JSON())
	return h
}

// ListRequest is the query of GET /notifications.
type ListRequest struct {
	Limit  int      `query:"limit"`
	Offset int      `query:"offset"`
	Unread bool     `query:"unread"`
	Types  []string `query:"type"`
}

func (q ListRequest) options() notifications.ListOptions {
	opts := notifications.ListOptions{
		Limit:      q.Limit,
		Offset:     max(q.Offset, 0),
		OnlyUnread: q.Unread,
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultPageSize
	}
	opts.Limit = min(opts.Limit, maxPageSize)
	for _, t := range q.Types {
		opts.Types = append(opts.Types, notifications.Type(t))
	}
	return opts
}

// MarkReadRequest is the body of POST /notifications/read.
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

type listResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
	Unread        int                          `json:"unread"`
}

type unreadResponse struct {
	Unread int `json:"unread"`
}

// List serves GET /notifications?limit=&offset=&unread=true&type=.
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) { h.list(w, r) }

// Unread serves GET /notifications/unread.
func (h *InboxHandler) Unread(w http.ResponseWriter, r *http.Request) { h.unread(w, r) }

// MarkRead serves POST /notifications/read. Listed ids are marked read;
// without ids every unread notification addressed to the caller's user id is.
func (h *InboxHandler) MarkRead(w http.ResponseWriter, r *http.Request) { h.markRead(w, r) }

func (h *InboxHandler) listNotifications(ctx handler.Context, req ListRequest) handler.Response {
	rcpt, ok := recipient(ctx)
	if !ok {
		return handler.JSONError(handler.ErrUnauthorized)
	}

	list, err := h.inbox.List(ctx, rcpt, req.options())
	if err != nil {
		return h.fail(ctx, err)
	}
	unread, err := h.inbox.CountUnread(ctx, rcpt)
	if err != nil {
		return h.fail(ctx, err)
	}
	if list == nil {
		list = []notifications.Notification{}
	}

	return handler.JSON(listResponse{Notifications: list, Unread: unread})
}

func (h *InboxHandler) unreadCount(ctx handler.Context, _ struct{}) handler.Response {
	rcpt, ok := recipient(ctx)
	if !ok {
		return handler.JSONError(handler.ErrUnauthorized)
	}

	unread, err := h.inbox.CountUnread(ctx, rcpt)
	if err != nil {
		return h.fail(ctx, err)
	}
	return handler.JSON(unreadResponse{Unread: unread})
}

func (h *InboxHandler) markNotificationsRead(ctx handler.Context, req MarkReadRequest) handler.Response {
	rcpt, ok := recipient(ctx)
	if !ok {
		return handler.JSONError(handler.ErrUnauthorized)
	}

	var err error
	if len(req.IDs) == 0 {
		err = h.inbox.MarkAllRead(ctx, rcpt)
	} else {
		err = h.inbox.MarkRead(ctx, rcpt, req.IDs...)
	}
	if err != nil {
		return h.fail(ctx, err)
	}

	return h.unreadCount(ctx, struct{}{})
}

func (h *InboxHandler) fail(ctx handler.Context, err error) handler.Response {
	h.logger.ErrorContext(ctx, "notification store request failed", logger.Error(err))
	return handler.JSONError(handler.ErrServiceUnavailable)
}

// recipient maps the request principal; the inbox needs a user id or a role.
func recipient(ctx handler.Context) (notifications.Recipient, bool) {
	p, ok := principal.FromContext(ctx)
	if !ok {
		return notifications.Recipient{}, false
	}
	return notifications.Recipient{UserID: p.UserID, Role: p.Role}, true
}
