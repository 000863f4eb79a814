package principal

// Principal identifies who is behind a request.
// The zero value is an anonymous visitor.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// IsAnonymous reports whether the principal carries no identity at all.
// A role without a user id is a staff-wide principal, not an anonymous one.
func (p Principal) IsAnonymous() bool {
	return p.UserID == "" && p.Role == ""
}
