package principal

import "context"

type contextKey struct{}

// WithContext stores p in ctx.
func WithContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored by the middleware.
// The second value is false for anonymous requests.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	if !ok || p.IsAnonymous() {
		return Principal{}, false
	}
	return p, true
}

// UserID extracts the user id for log and event extractors.
func UserID(ctx context.Context) (string, bool) {
	p, _ := FromContext(ctx)
	return p.UserID, p.UserID != ""
}
