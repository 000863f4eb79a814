// Package realtime exposes the notification pipeline and telemetry over HTTP.
//
// Routes:
//
//	GET  /stream                 datastar SSE stream of live notifications
//	POST /events                 client telemetry, always answers {"ok":true}
//	GET  /notifications          recipient's notifications, newest first
//	GET  /notifications/unread   unread count
//	POST /notifications/read     mark {"ids": [...]} read, or all direct notifications when empty
//
// The stream registers one live connection per request and unregisters it when
// the client goes away or the registry shuts down. Anonymous callers are
// registered without a subject or role and only see broadcasts. The stream
// first sends the unread count, then for every delivered notification a signal
// patch carrying {notification, unread}, the refreshed badge and a toast.
package realtime
