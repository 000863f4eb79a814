package binder

import "errors"

var (
	// ErrBinderNotApplicable tells handler.Wrap to skip a binder that has
	// nothing to read from the request, such as an empty JSON body.
	ErrBinderNotApplicable = errors.New("binder not applicable to request")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
)
