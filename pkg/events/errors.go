package events

import "errors"

var (
	// ErrStorageNotAvailable indicates the storage backend is unavailable.
	ErrStorageNotAvailable = errors.New("events: storage backend is unavailable")

	// ErrMissingType indicates an event without a type.
	ErrMissingType = errors.New("events: event type is required")

	// ErrLoggerClosed is reported for events logged after Close.
	ErrLoggerClosed = errors.New("events: logger is closed")

	// ErrIndexFailed indicates the search backend rejected a document.
	ErrIndexFailed = errors.New("events: failed to index event")
)
