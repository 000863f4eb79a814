package events

import (
	"strings"
	"time"
)

// Event is a stored record of a user action. Events are append-only.
type Event struct {
	ID        string         `json:"id" bson:"_id"`
	UserID    string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	UID       string         `json:"uid,omitempty" bson:"uid,omitempty"`
	Type      string         `json:"type" bson:"type"`
	Context   map[string]any `json:"context,omitempty" bson:"context,omitempty"`
	IP        string         `json:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	RequestID string         `json:"request_id,omitempty" bson:"request_id,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// Input describes an action to record. Only Type is required.
// UID is the client-side identity (device or anonymous visitor id).
type Input struct {
	UserID    string
	UID       string
	Type      string
	Context   map[string]any
	IP        string
	UserAgent string
	RequestID string
}

func (in Input) normalize() Input {
	in.Type = strings.TrimSpace(in.Type)
	in.UserID = strings.TrimSpace(in.UserID)
	in.UID = strings.TrimSpace(in.UID)
	return in
}
