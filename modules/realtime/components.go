package realtime

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/rentadmin/pkg/notifications"
)

//go:generate templ generate

const (
	// BadgeID is the element id of the unread counter in the admin layout.
	BadgeID = "notification-badge"
	// ToastContainerID is the element new notification toasts are appended to.
	ToastContainerID = "notification-toasts"
)

func badgeLabel(count int) string {
	if count > 99 {
		return "99+"
	}
	return strconv.Itoa(count)
}

func toastURL(n notifications.Notification) templ.SafeURL {
	if n.ActionURL == "" {
		return "#"
	}
	return templ.URL(n.ActionURL)
}
