package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/rentadmin/pkg/binder"
)

// JSONResponse is the standard JSON response structure
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta adds metadata to response
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v in the {"data": ...} envelope. An error value becomes an
// error response instead.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK}

	switch val := v.(type) {
	case JSONResponse:
		r.body = val
	case error:
		r.body.Error = errorToDetail(val, &r.status)
	default:
		r.body.Data = v
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError creates a JSON error response from an error with options
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}
	r.body.Error = errorToDetail(err, &r.status)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errorToDetail converts err to an ErrorDetail and sets the matching status.
// Binder failures are client errors; anything unknown is a 500 whose
// message is not exposed.
func errorToDetail(err error, status *int) *ErrorDetail {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		httpErr = ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseQuery):
		*status = http.StatusBadRequest
		return &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	default:
		*status = http.StatusInternalServerError
		return &ErrorDetail{Code: "internal_error", Message: http.StatusText(http.StatusInternalServerError)}
	}

	*status = httpErr.Code
	return &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
}
