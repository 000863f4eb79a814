package notifications

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrValidation indicates the creation input is incomplete or malformed.
	ErrValidation = errors.New("notifications: invalid input")

	// ErrPersistence indicates the notification store rejected the write.
	ErrPersistence = errors.New("notifications: failed to store notification")

	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notifications: notification not found")

	// ErrMissingID is returned by storages for records without an id.
	ErrMissingID = errors.New("notifications: notification id is required")
)

// ValidationError lists failed fields (json name -> failed rule).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
