// Package handler adapts typed request handlers to net/http.
//
// Wrap binds the request into a typed value with the configured binders, calls
// the handler and renders the returned Response. Errors from binding or
// rendering go to an ErrorHandler; JSONErrorHandler answers with the
// {"error": {...}} envelope that JSON responses use.
//
//	type ListRequest struct {
//		Limit int `query:"limit"`
//	}
//
//	list := func(ctx handler.Context, req ListRequest) handler.Response {
//		items, err := store.List(ctx, req.Limit)
//		if err != nil {
//			return handler.JSONError(handler.ErrServiceUnavailable)
//		}
//		return handler.JSON(items)
//	}
//
//	r.Get("/items", handler.Wrap(list,
//		handler.WithBinders[handler.Context, ListRequest](binder.Query()),
//		handler.WithErrorHandler[handler.Context, ListRequest](handler.JSONErrorHandler(log)),
//	))
//
// SSE responses hand the handler a StreamContext that patches templ
// components and datastar signals into the page for as long as it runs.
package handler
