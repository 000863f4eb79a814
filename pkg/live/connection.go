package live

import "context"

// Emitter is the single operation the registry performs on a connection.
// Implementations must return promptly once ctx is done.
type Emitter[T any] interface {
	Emit(ctx context.Context, msg T) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc[T any] func(ctx context.Context, msg T) error

func (f EmitterFunc[T]) Emit(ctx context.Context, msg T) error {
	return f(ctx, msg)
}

// Connection is a registered live delivery channel.
type Connection[T any] struct {
	SubjectID    string
	AudienceRole string
	Emitter      Emitter[T]
}

// Criteria selects the connections a broadcast is delivered to.
type Criteria struct {
	SubjectID    string
	AudienceRole string
}

// IsEmpty reports whether the criteria address every connection.
func (c Criteria) IsEmpty() bool {
	return c.SubjectID == "" && c.AudienceRole == ""
}

// MatchMode controls how subject and role criteria combine.
type MatchMode int

const (
	// MatchAny matches when any provided criterion matches.
	MatchAny MatchMode = iota
	// MatchAll matches when every provided criterion matches.
	MatchAll
)

// Matches reports whether a connection with the given identity is selected by c.
func (m MatchMode) Matches(c Criteria, subjectID, role string) bool {
	if c.IsEmpty() {
		return true
	}

	subjectOK := c.SubjectID != "" && c.SubjectID == subjectID
	roleOK := c.AudienceRole != "" && c.AudienceRole == role

	if m == MatchAll {
		return (c.SubjectID == "" || subjectOK) && (c.AudienceRole == "" || roleOK)
	}
	return subjectOK || roleOK
}
