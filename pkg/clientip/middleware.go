package clientip

import "net/http"

// Middleware stores the client IP resolved with DefaultHeaders in the request context.
func Middleware(next http.Handler) http.Handler {
	return defaultExtractor.Middleware(next)
}

// Middleware stores the client IP resolved by e in the request context.
func (e *Extractor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SetIPToContext(r.Context(), e.IP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
