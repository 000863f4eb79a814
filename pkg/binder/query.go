package binder

import "net/http"

// Query binds URL query parameters into fields tagged `query:"name"`.
// Untagged fields use their lowercased name; `query:"-"` skips a field.
// Slices accept repeated parameters or comma-separated values.
//
//	type listRequest struct {
//		Limit  int      `query:"limit"`
//		Unread bool     `query:"unread"`
//		Types  []string `query:"type"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
