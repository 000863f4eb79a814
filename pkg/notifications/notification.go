package notifications

import (
	"time"

	"github.com/dmitrymomot/rentadmin/pkg/live"
)

// Type identifies what happened. The set is open: workflows may use any string,
// the constants below are the ones the admin UI knows how to decorate.
type Type string

const (
	TypeBookingCreated   Type = "BOOKING_CREATED"
	TypeBookingApproved  Type = "BOOKING_APPROVED"
	TypeBookingRejected  Type = "BOOKING_REJECTED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
	TypePaymentReceived  Type = "PAYMENT_RECEIVED"
	TypePaymentFailed    Type = "PAYMENT_FAILED"
	TypeVehicleChanged   Type = "VEHICLE_CHANGED"
	TypeAdminMessage     Type = "ADMIN_MESSAGE"
)

// Notification is a persisted notification record.
// A record without SubjectID and AudienceRole is a broadcast to everyone.
type Notification struct {
	ID           string     `json:"id" bson:"_id"`
	SubjectID    string     `json:"subject_id,omitempty" bson:"subject_id,omitempty"`
	AudienceRole string     `json:"audience_role,omitempty" bson:"audience_role,omitempty"`
	BookingID    string     `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
	Type         Type       `json:"type" bson:"type"`
	Title        string     `json:"title" bson:"title"`
	Message      string     `json:"message" bson:"message"`
	ActionURL    string     `json:"action_url,omitempty" bson:"action_url,omitempty"`
	Read         bool       `json:"read" bson:"read"`
	ReadAt       *time.Time `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

// IsBroadcast reports whether the notification addresses every recipient.
func (n Notification) IsBroadcast() bool {
	return n.SubjectID == "" && n.AudienceRole == ""
}

// Criteria returns the live-delivery filter for the notification.
func (n Notification) Criteria() live.Criteria {
	return live.Criteria{SubjectID: n.SubjectID, AudienceRole: n.AudienceRole}
}

// MarkAsRead marks the notification as read at the given time.
func (n *Notification) MarkAsRead(at time.Time) {
	n.Read = true
	n.ReadAt = &at
}

// Recipient is the principal reading notifications. Either field may be empty.
type Recipient struct {
	UserID string
	Role   string
}

// CanSee reports whether n is addressed to r: directly, through r's role, or as a broadcast.
func (r Recipient) CanSee(n Notification) bool {
	if n.IsBroadcast() {
		return true
	}
	if n.SubjectID != "" && n.SubjectID == r.UserID {
		return true
	}
	return n.AudienceRole != "" && n.AudienceRole == r.Role
}

// PayloadKind discriminates notification pushes from other stream messages.
const PayloadKind = "notification"

// Payload is the wire shape pushed to live connections.
type Payload struct {
	Kind         string       `json:"kind"`
	Notification Notification `json:"notification"`
}

// NewPayload wraps n for live delivery.
func NewPayload(n Notification) Payload {
	return Payload{Kind: PayloadKind, Notification: n}
}
