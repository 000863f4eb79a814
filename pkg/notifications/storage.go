package notifications

import (
	"context"
	"time"
)

// Storage persists notification records. Records are never deleted by this package.
type Storage interface {
	// Create stores a new notification.
	Create(ctx context.Context, notif Notification) error

	// List returns notifications visible to the recipient, newest first.
	List(ctx context.Context, r Recipient, opts ListOptions) ([]Notification, error)

	// CountUnread returns the number of unread notifications visible to the recipient.
	CountUnread(ctx context.Context, r Recipient) (int, error)

	// MarkRead marks the given notifications read, restricted to ones visible to the
	// recipient. Unknown ids are ignored. Read state is stored per record, so role and
	// broadcast notifications are only touched when listed explicitly: no ids marks just
	// the unread notifications addressed to the recipient's user id.
	MarkRead(ctx context.Context, r Recipient, notifIDs ...string) error
}

// ListOptions provides filtering and pagination options for listing notifications.
type ListOptions struct {
	Limit      int        // Maximum number of notifications to return (0 = no limit)
	Offset     int        // Number of notifications to skip for pagination
	OnlyUnread bool       // When true, only return unread notifications
	Types      []Type     // If specified, only return notifications of these types
	Since      *time.Time // If specified, only return notifications created after this time
}
