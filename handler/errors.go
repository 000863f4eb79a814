package handler

import (
	"errors"
	"net/http"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrSSENotInitialized indicates a stream was used without an SSE connection
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError carries a status code and a machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest           = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized         = NewHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrNotAcceptable        = NewHTTPError(http.StatusNotAcceptable, "not_acceptable")
	ErrUnsupportedMediaType = NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrServiceUnavailable   = NewHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)
