package principal

import "errors"

var (
	// ErrNoCredentials means the request carries nothing a resolver understands.
	// Chains move on to the next resolver.
	ErrNoCredentials = errors.New("principal: no credentials")

	// ErrInvalidCredentials means credentials were present but rejected.
	ErrInvalidCredentials = errors.New("principal: invalid credentials")

	// ErrMissingSigningKey is returned when a JWT resolver is built without a key.
	ErrMissingSigningKey = errors.New("principal: signing key is required")

	// ErrSessionLookup indicates the session store could not be queried.
	ErrSessionLookup = errors.New("principal: session lookup failed")
)
