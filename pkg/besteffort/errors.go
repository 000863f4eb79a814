package besteffort

import "errors"

// ErrPanicked wraps a value recovered from a panicking operation.
var ErrPanicked = errors.New("besteffort: operation panicked")
