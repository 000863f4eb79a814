package principal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rentadmin/pkg/logger"
)

// Middleware resolves the principal and stores it in the request context.
// It never rejects a request: missing or bad credentials leave it anonymous,
// and handlers decide what an anonymous caller may see.
func Middleware(resolver Resolver, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := resolver.Resolve(r)
			switch {
			case err == nil:
				r = r.WithContext(WithContext(r.Context(), p))
			case errors.Is(err, ErrNoCredentials):
			default:
				log.DebugContext(r.Context(), "principal not resolved", logger.Error(err))
			}
			next.ServeHTTP(w, r)
		})
	}
}
