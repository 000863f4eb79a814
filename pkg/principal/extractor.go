package principal

import (
	"errors"
	"net/http"
	"strings"
)

// TokenExtractorFunc pulls a credential out of a request.
// It returns ErrNoCredentials when the request has none.
type TokenExtractorFunc func(r *http.Request) (string, error)

// BearerTokenExtractor reads "Authorization: Bearer <token>".
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoCredentials
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidCredentials
	}

	return strings.TrimSpace(token), nil
}

// CookieTokenExtractor reads the named cookie.
func CookieTokenExtractor(cookieName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			return "", ErrNoCredentials
		}
		return cookie.Value, nil
	}
}

// FirstOf tries extractors in order and returns the first credential found.
func FirstOf(extractors ...TokenExtractorFunc) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			token, err := extract(r)
			if err == nil {
				return token, nil
			}
			if !errors.Is(err, ErrNoCredentials) {
				return "", err
			}
		}
		return "", ErrNoCredentials
	}
}
